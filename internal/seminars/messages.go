package seminars

// User-facing texts.
const (
	MsgCreated      = "Семинар успешно добавлен!"
	MsgCreateFailed = "Ошибка при добавлении семинара."
	MsgUpdateFailed = "Ошибка при обновлении семинара."
	MsgDeleted      = "Семинар(ы) успешно удалены!"
	MsgDeleteFailed = "Ошибка при удалении семинаров!"
	MsgDeleteAsk    = "Вы уверены, что хотите удалить выбранные семинары?"
	MsgLoadFailed   = "Ошибка загрузки данных."
	MsgUploadFailed = "Не удалось загрузить изображение."
	MsgNotFound     = "Семинар не найден."
)

var fieldMessages = map[string]map[string]string{
	"title": {
		"required": "Название обязательно",
	},
	"description": {
		"required": "Описание обязательно",
		"max":      "Описание не должно превышать 1000 символов",
	},
	"date": {
		"required": "Дата обязательна",
		"datetime": "Введите дату в формате ГГГГ-ММ-ДД",
		"notpast":  "Дата не может быть в прошлом",
	},
	"time": {
		"required": "Время обязательно",
	},
	"photo": {
		"required": "Ссылка на изображение обязательна",
		"photourl": "Введите корректную ссылку, начинающуюся с http:// или https://",
	},
}

func message(field, tag string) string {
	if m, ok := fieldMessages[field][tag]; ok {
		return m
	}
	return "Некорректное значение"
}
