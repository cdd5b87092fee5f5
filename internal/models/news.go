package models

import "encoding/json"

// NewsItem — запись блога. Проверяются только id и title, а на блог-API
// уходит исходное тело запроса из Raw целиком, со всеми полями.
type NewsItem struct {
	ID    int             `json:"id" binding:"required,min=1"`
	Title string          `json:"title" binding:"required"`
	Raw   json.RawMessage `json:"-"`
}

// Body — то, что отправляется на PUT /api/Blog/update/{id}.
func (n NewsItem) Body() ([]byte, error) {
	if len(n.Raw) > 0 {
		return n.Raw, nil
	}
	return json.Marshal(n)
}
