package dashboard

import "github.com/aura-seminar/admin/internal/models"

// DialogKind tells which dialog, if any, is shown over the dashboard.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogViewing
	DialogEditing
)

func (k DialogKind) String() string {
	switch k {
	case DialogViewing:
		return "viewing"
	case DialogEditing:
		return "editing"
	default:
		return "none"
	}
}

// Dialog is the single dialog slot of the dashboard. The zero value is "no dialog".
// A seminar is attached exactly when a dialog is open, so two dialogs can never
// be open at once.
type Dialog struct {
	kind    DialogKind
	seminar models.Seminar
}

// Viewing is the read-only detail dialog for s.
func Viewing(s models.Seminar) Dialog { return Dialog{kind: DialogViewing, seminar: s} }

// Editing is the edit dialog for s.
func Editing(s models.Seminar) Dialog { return Dialog{kind: DialogEditing, seminar: s} }

func (d Dialog) Kind() DialogKind { return d.kind }

// Seminar returns the seminar the dialog is about; ok is false when no dialog is open.
func (d Dialog) Seminar() (s models.Seminar, ok bool) {
	if d.kind == DialogNone {
		return models.Seminar{}, false
	}
	return d.seminar, true
}

func (d Dialog) IsViewing() bool { return d.kind == DialogViewing }
func (d Dialog) IsEditing() bool { return d.kind == DialogEditing }
