package models

// MovieUpdateInfo — сообщение об обновлении карточки фильма,
// публикуемое в очередь уведомлений и потребляемое воркером-отправителем.
type MovieUpdateInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	Slug        string `json:"slug"`
}
