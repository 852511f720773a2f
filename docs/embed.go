package docs

import _ "embed"

//go:embed webhook-api.openapi.yaml
var embeddedWebhookOpenAPI []byte

//go:embed swagger.html
var embeddedWebhookSwaggerHTML []byte

// WebhookOpenAPI is the OpenAPI document for the webhook API.
var WebhookOpenAPI = embeddedWebhookOpenAPI

// WebhookSwaggerHTML is the Swagger UI page serving that document.
var WebhookSwaggerHTML = embeddedWebhookSwaggerHTML
