// Package docs registers the OpenAPI document served under /swagger.
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
                "summary": "Create an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and receive a session token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Clear the session cookie",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/quit-profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quit-profile"],
                "summary": "Current quit profile with headline stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quit-profile"],
                "summary": "Create or replace the quit profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/quitProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope"}},
                    "403": {"description": "Demo mode", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/checkins": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkins"],
                "summary": "Check-ins, newest first",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkins"],
                "summary": "Record a daily check-in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/checkInRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope"}},
                    "403": {"description": "Demo mode", "schema": {"$ref": "#/definitions/envelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Derived progress summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/subscribe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subscribe"],
                "summary": "Join the newsletter",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/subscribeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/subscribe/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["subscribe"],
                "summary": "Newsletter status of the signed-in user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        }
    },
    "definitions": {
        "envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "quitProfileRequest": {
            "type": "object",
            "required": ["quitDate", "cigarettesPerDay", "costPerPack"],
            "properties": {
                "quitDate": {"type": "string", "example": "2024-03-01"},
                "cigarettesPerDay": {"type": "integer"},
                "costPerPack": {"type": "number"},
                "cigarettesPerPack": {"type": "integer", "default": 20},
                "personalGoal": {"type": "string"}
            }
        },
        "checkInRequest": {
            "type": "object",
            "required": ["date", "cravingIntensity", "mood"],
            "properties": {
                "date": {"type": "string", "example": "2024-03-15"},
                "cravingIntensity": {"type": "integer", "minimum": 1, "maximum": 10},
                "mood": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "subscribeRequest": {
            "type": "object",
            "required": ["email", "consent"],
            "properties": {
                "email": {"type": "string"},
                "consent": {"type": "boolean"},
                "source": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Smoke-Free Tracker API",
	Description:      "Quit-smoking progress tracking: quit profile, daily check-ins, derived progress and newsletter signup.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
