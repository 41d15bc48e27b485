// Package docs registers the Swagger description of the HTTP API with swag so
// echo-swagger can serve it. Keep it in step with the swag annotations on the
// handlers.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [
                    {"description": "Refresh token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.refreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/registrations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "List registered characters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.registrationListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Register a character",
                "parameters": [
                    {"description": "Character reference", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.addRegistrationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registrationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/registrations/{serverId}/{characterId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["registrations"],
                "summary": "Remove a registered character",
                "parameters": [
                    {"type": "string", "description": "Server id", "name": "serverId", "in": "path", "required": true},
                    {"type": "string", "description": "Character id", "name": "characterId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/characters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["characters"],
                "summary": "Search characters by name",
                "parameters": [
                    {"type": "string", "description": "Server id or all", "name": "server", "in": "query"},
                    {"type": "string", "description": "Character name", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.searchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/character-detail": {
            "get": {
                "produces": ["application/json"],
                "tags": ["characters"],
                "summary": "Character basic info",
                "parameters": [
                    {"type": "string", "description": "Server id", "name": "server", "in": "query", "required": true},
                    {"type": "string", "description": "Character id", "name": "characterId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CharacterDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/character-detail/equipment": {
            "get": {
                "produces": ["application/json"],
                "tags": ["characters"],
                "summary": "Character equipment",
                "parameters": [
                    {"type": "string", "description": "Server id", "name": "server", "in": "query", "required": true},
                    {"type": "string", "description": "Character id", "name": "characterId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.EquipmentItem"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/web/login": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Log in and persist the session for this device",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/web/logout": {
            "post": {
                "tags": ["web"],
                "summary": "Clear the session and redirect home",
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/web/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Trade the stored refresh token for a new token pair",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "303": {"description": "Redirect to login when no valid refresh token is stored"}
                }
            }
        },
        "/web/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Current session snapshot",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/web/my-page": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Registered characters with details",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.myPageResponse"}},
                    "303": {"description": "Redirect to login when the session is rejected"}
                }
            }
        },
        "/web/my-page/characters": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "tags": ["web"],
                "summary": "Register a character for the session user",
                "parameters": [
                    {"description": "Character reference", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.addRegistrationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "303": {"description": "Redirect to login when the session is rejected"}
                }
            }
        },
        "/web/my-page/characters/{serverId}/{characterId}": {
            "delete": {
                "tags": ["web"],
                "summary": "Remove a registered character",
                "parameters": [
                    {"type": "string", "description": "Server id", "name": "serverId", "in": "path", "required": true},
                    {"type": "string", "description": "Character id", "name": "characterId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "303": {"description": "Redirect to login when the session is rejected"}
                }
            }
        },
        "/web/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Search characters",
                "parameters": [
                    {"type": "string", "description": "Server id or all", "name": "server", "in": "query"},
                    {"type": "string", "description": "Character name", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.webSearchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/web/characters/{serverId}/{characterId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Character detail with equipment images resolved",
                "parameters": [
                    {"type": "string", "description": "Server id", "name": "serverId", "in": "path", "required": true},
                    {"type": "string", "description": "Character id", "name": "characterId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CharacterEquipment"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/item-image/{itemId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["characters"],
                "summary": "Item image URL",
                "parameters": [
                    {"type": "string", "description": "Item id", "name": "itemId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.itemImageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "nickname"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "nickname": {"type": "string", "maxLength": 30}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.refreshRequest": {
            "type": "object",
            "required": ["refreshToken"],
            "properties": {"refreshToken": {"type": "string"}}
        },
        "handler.userPayload": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "nickname": {"type": "string"}, "role": {"type": "string"}}
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/handler.userPayload"}}
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.userPayload"}
            }
        },
        "handler.addRegistrationRequest": {
            "type": "object",
            "required": ["serverId", "characterId"],
            "properties": {"serverId": {"type": "string"}, "characterId": {"type": "string"}}
        },
        "handler.registrationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/domain.RegisteredCharacterRef"}
            }
        },
        "handler.registrationListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.RegisteredCharacterRef"}},
                "message": {"type": "string"}
            }
        },
        "handler.searchResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.CharacterDetail"}}
            }
        },
        "domain.RegisteredCharacterRef": {
            "type": "object",
            "properties": {
                "serverId": {"type": "string"},
                "characterId": {"type": "string"},
                "characterName": {"type": "string"},
                "adventureName": {"type": "string"}
            }
        },
        "handler.itemImageResponse": {
            "type": "object",
            "properties": {"imageUrl": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "isLoggedIn": {"type": "boolean"},
                "isLoading": {"type": "boolean"},
                "user": {"$ref": "#/definitions/domain.SessionUser"},
                "notice": {"type": "string"}
            }
        },
        "handler.myPageResponse": {
            "type": "object",
            "properties": {
                "characters": {"type": "array", "items": {"$ref": "#/definitions/domain.CharacterDetail"}},
                "message": {"type": "string"}
            }
        },
        "handler.webSearchResponse": {
            "type": "object",
            "properties": {
                "server": {"type": "string"},
                "name": {"type": "string"},
                "characters": {"type": "array", "items": {"$ref": "#/definitions/domain.CharacterDetail"}}
            }
        },
        "domain.SessionUser": {
            "type": "object",
            "properties": {"userId": {"type": "string"}, "nickname": {"type": "string"}}
        },
        "domain.CharacterEquipment": {
            "type": "object",
            "properties": {
                "character": {"$ref": "#/definitions/domain.CharacterDetail"},
                "equipment": {"type": "array", "items": {"$ref": "#/definitions/domain.EquipmentItem"}}
            }
        },
        "domain.CharacterDetail": {
            "type": "object",
            "properties": {
                "serverId": {"type": "string"},
                "characterId": {"type": "string"},
                "characterName": {"type": "string"},
                "adventureName": {"type": "string"},
                "level": {"type": "integer"},
                "jobId": {"type": "string"},
                "jobGrowId": {"type": "string"},
                "jobName": {"type": "string"},
                "jobGrowName": {"type": "string"},
                "fame": {"type": "integer"},
                "imageUrl": {"type": "string"}
            }
        },
        "domain.EquipmentItem": {
            "type": "object",
            "properties": {
                "slotId": {"type": "string"},
                "slotName": {"type": "string"},
                "itemId": {"type": "string"},
                "itemName": {"type": "string"},
                "itemRarity": {"type": "string"},
                "reinforce": {"type": "integer"},
                "imageUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DNF Character Lookup API",
	Description:      "Character search, registration and roster API backed by the Neople Open API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
