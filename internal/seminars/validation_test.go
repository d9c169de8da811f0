package seminars

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-seminar/admin/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func validForm() Form {
	return Form{
		Title:       "Intro to X",
		Description: strings.Repeat("a", 50),
		Date:        "2026-03-16",
		Time:        "10:00",
		Photo:       "https://example.com/a.png",
	}
}

func validationErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	require.Error(t, err)
	verrs, ok := err.(ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)
	return verrs
}

func TestValidator_ValidForm(t *testing.T) {
	v := NewValidator(fixedNow)

	assert.NoError(t, v.Validate(validForm()))
}

func TestValidator_RequiredFields(t *testing.T) {
	v := NewValidator(fixedNow)

	verrs := validationErrors(t, v.Validate(Form{}))

	assert.Equal(t, "Название обязательно", verrs["title"])
	assert.Equal(t, "Описание обязательно", verrs["description"])
	assert.Equal(t, "Дата обязательна", verrs["date"])
	assert.Equal(t, "Время обязательно", verrs["time"])
	assert.Equal(t, "Ссылка на изображение обязательна", verrs["photo"])
}

func TestValidator_DescriptionLength(t *testing.T) {
	v := NewValidator(fixedNow)

	f := validForm()
	f.Description = strings.Repeat("я", models.MaxDescriptionLength)
	assert.NoError(t, v.Validate(f))

	f.Description = strings.Repeat("я", models.MaxDescriptionLength+1)
	verrs := validationErrors(t, v.Validate(f))
	assert.Equal(t, "Описание не должно превышать 1000 символов", verrs["description"])
	assert.Len(t, verrs, 1)
}

func TestValidator_DateNotInPast(t *testing.T) {
	v := NewValidator(fixedNow)

	f := validForm()
	f.Date = "2026-03-15"
	assert.NoError(t, v.Validate(f), "today is allowed")

	f.Date = "2026-03-14"
	verrs := validationErrors(t, v.Validate(f))
	assert.Equal(t, "Дата не может быть в прошлом", verrs["date"])
}

func TestValidator_DateFormat(t *testing.T) {
	v := NewValidator(fixedNow)

	f := validForm()
	f.Date = "16.03.2026"
	verrs := validationErrors(t, v.Validate(f))
	assert.Equal(t, "Введите дату в формате ГГГГ-ММ-ДД", verrs["date"])
}

func TestValidator_EditKeepsPastDate(t *testing.T) {
	v := NewValidator(fixedNow)
	original := models.Seminar{ID: 3, Title: "Old", Description: "d", Date: "01.02.2025", Time: "09:00", Photo: "http://x/y.png"}

	f := FormFor(original)
	assert.Equal(t, "2025-02-01", f.Date)
	assert.NoError(t, v.Validate(f), "unchanged past date is allowed on edit")

	f.Date = "2025-02-02"
	verrs := validationErrors(t, v.Validate(f))
	assert.Equal(t, "Дата не может быть в прошлом", verrs["date"])
}

func TestValidator_EditOfWaivesOnlyUnchangedDate(t *testing.T) {
	v := NewValidator(fixedNow)
	original := models.Seminar{ID: 3, Date: "01.02.2025"}

	f := validForm()
	f.Date = "2025-02-01"
	assert.Error(t, v.Validate(f), "a past date on create is rejected")
	assert.NoError(t, v.Validate(f.EditOf(original)))
}

func TestValidator_PhotoPattern(t *testing.T) {
	v := NewValidator(fixedNow)

	cases := []struct {
		photo string
		ok    bool
	}{
		{"https://example.com/a.png", true},
		{"http://example.com/a.png", true},
		{"HTTPS://EXAMPLE.COM/A.PNG", true},
		{"ftp://example.com/a.png", false},
		{"example.com/a.png", false},
		{"https://", false},
		{"https://example.com/a b.png", false},
	}
	for _, tc := range cases {
		t.Run(tc.photo, func(t *testing.T) {
			f := validForm()
			f.Photo = tc.photo
			err := v.Validate(f)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			verrs := validationErrors(t, err)
			assert.Equal(t, "Введите корректную ссылку, начинающуюся с http:// или https://", verrs["photo"])
		})
	}
}

func TestForm_SeminarReformatsDate(t *testing.T) {
	f := validForm()
	f.Date = "2025-03-10"

	s := f.Seminar(42)

	assert.Equal(t, models.ID(42), s.ID)
	assert.Equal(t, "10.03.2025", s.Date)
	assert.Equal(t, f.Title, s.Title)
	assert.Equal(t, f.Photo, s.Photo)
}

func TestForm_DescriptionLengthCountsCharacters(t *testing.T) {
	f := Form{Description: "привет"}

	assert.Equal(t, 6, f.DescriptionLength())
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{"title": "x", "date": "y"}

	assert.Equal(t, "invalid fields: date, title", err.Error())
}

func TestValidator_CRLFCountsAsOneCharacter(t *testing.T) {
	v := NewValidator(fixedNow)
	f := validForm()
	// 998 letters and one line break as the browser submits it
	f.Description = strings.Repeat("a", 499) + "\r\n" + strings.Repeat("a", 499)

	assert.Equal(t, 999, f.DescriptionLength())
	assert.NoError(t, v.Validate(f))

	f.Description = strings.Repeat("a", 500) + "\r\n" + strings.Repeat("a", 499)
	assert.Equal(t, models.MaxDescriptionLength, f.DescriptionLength())
	assert.NoError(t, v.Validate(f))

	assert.Equal(t, strings.Repeat("a", 500)+"\n"+strings.Repeat("a", 499), f.Seminar(1).Description)
}

func TestValidator_ValidateExcept(t *testing.T) {
	v := NewValidator(fixedNow)
	f := validForm()
	f.Photo = ""

	assert.NoError(t, v.ValidateExcept(f, "photo"))

	f.Title = ""
	verrs := validationErrors(t, v.ValidateExcept(f, "photo"))
	assert.Contains(t, verrs, "title")
	assert.NotContains(t, verrs, "photo")
}
