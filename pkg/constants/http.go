package constants

// Заголовки
const (
	HeaderContentType = "Content-Type"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)
