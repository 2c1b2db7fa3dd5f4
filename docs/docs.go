// Package docs holds the OpenAPI document served at /swagger. It mirrors the
// handler annotations; regenerate with `swag init -g internal/http/router.go`.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/questions": {
            "get": {
                "tags": ["Questions"], "summary": "List questions", "operationId": "listQuestions",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "minimum": 0, "name": "limit", "in": "query"},
                    {"type": "integer", "minimum": 0, "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}}},
                    "400": {"description": "Missing or unparsable pagination", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questions"], "summary": "Ask a question", "operationId": "createQuestion",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.NewQuestion"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Question"}},
                    "400": {"description": "Missing title or content", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "No or invalid session", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Malformed body or persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Profanity filter unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions/{id}": {
            "get": {
                "tags": ["Questions"], "summary": "Get a question", "operationId": "getQuestion",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Question"}},
                    "400": {"description": "Unparsable id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unknown question", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questions"], "summary": "Update a question", "operationId": "updateQuestion",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.NewQuestion"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Question"}},
                    "400": {"description": "Unparsable id or missing fields", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Not the owner", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Malformed body or persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questions"], "summary": "Delete a question and its answers", "operationId": "deleteQuestion",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Unparsable id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Not the owner", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/answers": {
            "get": {
                "tags": ["Answers"], "summary": "List answers to a question", "operationId": "listAnswers",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "question_id", "in": "query", "required": true},
                    {"type": "integer", "minimum": 0, "name": "limit", "in": "query"},
                    {"type": "integer", "minimum": 0, "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Answer"}}},
                    "400": {"description": "Missing or unparsable parameter", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Answers"], "summary": "Answer a question", "operationId": "createAnswer",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.NewAnswer"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Answer"}},
                    "400": {"description": "Missing content", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "No or invalid session", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Malformed body or persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Profanity filter unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/answers/{id}": {
            "get": {
                "tags": ["Answers"], "summary": "Get an answer", "operationId": "getAnswer",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Answer"}},
                    "400": {"description": "Unparsable id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unknown answer", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Answers"], "summary": "Delete an answer", "operationId": "deleteAnswer",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Unparsable id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Not the owner", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/registration": {
            "post": {
                "tags": ["Accounts"], "summary": "Create an account", "operationId": "register",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.Credentials"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Account"}},
                    "400": {"description": "Blank email or password", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Email taken or malformed body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Accounts"], "summary": "Log in", "operationId": "login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.Credentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "401": {"description": "Wrong email/password combination", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unknown account or malformed body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Account": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "email": {"type": "string"}}
        },
        "domain.Question": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "title": {"type": "string"}, "content": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}, "account_id": {"type": "integer"}
            }
        },
        "domain.NewQuestion": {
            "type": "object", "required": ["title", "content"],
            "properties": {"title": {"type": "string"}, "content": {"type": "string"}, "tags": {"type": "array", "items": {"type": "string"}}}
        },
        "domain.Answer": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "content": {"type": "string"}, "question_id": {"type": "integer"}, "account_id": {"type": "integer"}}
        },
        "domain.NewAnswer": {
            "type": "object", "required": ["content", "question_id"],
            "properties": {"content": {"type": "string"}, "question_id": {"type": "integer"}}
        },
        "handlers.Credentials": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string", "example": "ann@example.com"}, "password": {"type": "string"}}
        },
        "handlers.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "account_id": {"type": "integer"}, "expires_at": {"type": "string", "format": "date-time"}}
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "Question 3 deleted"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "code": {"type": "string", "example": "persistence_failure"},
                "message": {"type": "string", "example": "cannot update, invalid data"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Q&A API",
	Description:      "Questions and answers with account ownership, profanity filtering and idempotent creates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
