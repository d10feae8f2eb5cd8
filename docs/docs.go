// Package docs is generated by swag from the controller annotations.
// Regenerate with: swag init -g main.go
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
        "/cities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Active cities with starting price and room count",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/cities/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Fuzzy city search",
                "parameters": [{"type": "string", "description": "Search text", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/cities/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "City page",
                "parameters": [
                    {"type": "integer", "description": "City ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Minimum guests", "name": "capacity", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "check_in", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "check_out", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/room-types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Room types with optional filters",
                "parameters": [
                    {"type": "string", "description": "Name contains", "name": "room_type", "in": "query"},
                    {"type": "number", "description": "Minimum nightly price", "name": "price_min", "in": "query"},
                    {"type": "number", "description": "Maximum nightly price", "name": "price_max", "in": "query"},
                    {"type": "integer", "description": "Minimum guests", "name": "capacity", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/rooms/{id}/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Check whether a room is free for a stay",
                "parameters": [
                    {"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "check_in", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "check_out", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/rooms/{id}/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a room",
                "parameters": [
                    {"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true},
                    {"description": "Guest and stay", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/bookings/{id}/confirmation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Booking confirmation",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Send a message to the hotel",
                "parameters": [{"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ContactRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Staff login",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateBookingRequest": {
            "type": "object",
            "required": ["checkIn", "checkOut", "guestEmail", "guestName", "guestPhone"],
            "properties": {
                "checkIn": {"type": "string"},
                "checkOut": {"type": "string"},
                "guestEmail": {"type": "string", "maxLength": 254},
                "guestName": {"type": "string", "maxLength": 100},
                "guestPhone": {"type": "string", "maxLength": 20},
                "specialRequests": {"type": "string", "maxLength": 2000}
            }
        },
        "dto.ContactRequest": {
            "type": "object",
            "required": ["email", "message", "name", "subject"],
            "properties": {
                "contactMethod": {"type": "string", "enum": ["email", "phone", "both"]},
                "email": {"type": "string"},
                "message": {"type": "string"},
                "name": {"type": "string"},
                "subject": {"type": "string"}
            }
        },
        "dto.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "mess": {"type": "string"},
                "pagination": {"$ref": "#/definitions/response.Pagination"}
            }
        },
        "response.Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ABC Hotels API",
	Description:      "Room booking, catalog, careers and contact endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
