package models

// Envelope — общий формат ответа: и внешнего API, и нашего.
type Envelope[T any] struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{OK: true, Message: message, Data: data}
}

func Fail(message string) Envelope[any] {
	return Envelope[any]{OK: false, Message: message}
}

// NewsResult — ответ новостных ручек, там есть ещё status.
type NewsResult struct {
	OK      bool   `json:"ok"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
