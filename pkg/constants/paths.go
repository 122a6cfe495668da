package constants

// Health
const (
	PathHealth = "/health"
	PathReady  = "/ready"
)

// Документация
const (
	PathOpenAPI = "/openapi.json"
	PathSwagger = "/swagger"
)
