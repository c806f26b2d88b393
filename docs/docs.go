// Package docs holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up a new participant",
                "parameters": [
                    {"description": "Sign-up data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created user", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: email_taken", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains token, token_type and user", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "Create an interview slot",
                "parameters": [
                    {"description": "Slot data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateInterviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created slot", "schema": {"$ref": "#/definitions/controllers.SlotSuccessResponse"}},
                    "400": {"description": "error.code: bad_request or invalid_interval", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: scheduling_conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews/available": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "List open interview slots",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains slots and pagination", "schema": {"$ref": "#/definitions/controllers.AvailableSlotsSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews/mine": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "List my interview slots",
                "responses": {
                    "200": {"description": "data is an array of slots", "schema": {"$ref": "#/definitions/controllers.SlotListSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews/{slotID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "Get an interview slot",
                "parameters": [{"type": "string", "description": "Slot ID (UUID)", "name": "slotID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the slot", "schema": {"$ref": "#/definitions/controllers.SlotSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["interviews"],
                "summary": "Delete an interview slot",
                "parameters": [{"type": "string", "description": "Slot ID (UUID)", "name": "slotID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: already_assigned, slot_cancelled or too_late", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews/{slotID}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "Accept an interview slot",
                "parameters": [{"type": "string", "description": "Slot ID (UUID)", "name": "slotID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the accepted slot", "schema": {"$ref": "#/definitions/controllers.SlotSuccessResponse"}},
                    "403": {"description": "error.code: self_assignment", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: already_assigned, slot_cancelled, too_late or scheduling_conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews/{slotID}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "Cancel an interview slot",
                "parameters": [{"type": "string", "description": "Slot ID (UUID)", "name": "slotID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the cancelled slot", "schema": {"$ref": "#/definitions/controllers.SlotSuccessResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: slot_cancelled or too_late", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/interviews/{slotID}/release": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interviews"],
                "summary": "Release an accepted interview slot",
                "parameters": [{"type": "string", "description": "Slot ID (UUID)", "name": "slotID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the reopened slot", "schema": {"$ref": "#/definitions/controllers.SlotSuccessResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: slot_cancelled or too_late", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "domain.Slot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_id": {"type": "string"},
                "assignee_id": {"type": "string"},
                "topic": {"type": "string"},
                "details": {"type": "string"},
                "meeting_reference": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "status": {"type": "string", "enum": ["open", "accepted", "cancelled"]},
                "cancelled": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "controllers.CreateInterviewRequest": {
            "type": "object",
            "properties": {
                "topic": {"type": "string"},
                "details": {"type": "string"},
                "meeting_reference": {"type": "string"},
                "start_time": {"type": "string"},
                "duration_minutes": {"type": "integer", "enum": [30, 45, 60]}
            }
        },
        "controllers.SignUpRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.SlotSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Slot"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.SlotListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Slot"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.AvailableSlotsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "slots": {"type": "array", "items": {"$ref": "#/definitions/domain.Slot"}},
                        "pagination": {"type": "object"}
                    }
                },
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Placement Portal Mock Interview API",
	Description:      "Peer mock-interview slot booking for the placement portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
