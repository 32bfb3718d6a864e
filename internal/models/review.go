// Package models содержит доменные сущности reviews-сервиса.
package models

import "time"

// Review — внутренняя доменная модель обзора (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB. Наружу/вовнутрь конвертируется в string и
//     неизменяем после создания.
//   - Comments — встроенный упорядоченный массив без самостоятельного
//     жизненного цикла: комментарий существует только внутри своего обзора.
//   - Rating — целочисленная оценка 1..10.
type Review struct {
	ID        string
	Title     string
	Food      string
	Content   string
	Rating    int32
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment — элемент встроенного массива comments.
// ID генерируется сервером (ObjectID hex) и глобально уникален:
// комментарий адресуется без знания родительского обзора.
type Comment struct {
	ID       string
	Content  string
	Nickname string
}

// ReviewFilter — критерии выборки списка обзоров.
// Критерии независимы и объединяются по AND; отсутствующий критерий
// не накладывает ограничений.
type ReviewFilter struct {
	// Title — регистронезависимый поиск подстроки в заголовке.
	Title string
	// MinRating — ограничение rating >= N; nil — без ограничения.
	MinRating *int32
}

// ReviewPatch — частичное обновление обзора ("sparse PUT").
// Пустая строка / нулевой рейтинг означают «оставить прежнее значение».
type ReviewPatch struct {
	Title   string
	Food    string
	Content string
	Rating  int32
}

// IsEmpty сообщает, что патч не содержит ни одного изменяемого поля.
func (p ReviewPatch) IsEmpty() bool {
	return p.Title == "" && p.Food == "" && p.Content == "" && p.Rating == 0
}
