// Package docs registers the OpenAPI description served under /api-docs.
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
        "/dashboard/invoices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List invoices",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Create an invoice",
                "parameters": [
                    {"type": "string", "description": "Customer ID", "name": "customerId", "in": "formData", "required": true},
                    {"type": "number", "description": "Amount in dollars", "name": "amount", "in": "formData", "required": true},
                    {"enum": ["paid", "pending"], "type": "string", "description": "Invoice status", "name": "status", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to the invoice list"},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/model.FormStateResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/model.FormStateResponse"}}
                }
            }
        },
        "/dashboard/invoices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [{"type": "string", "description": "Invoice ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.InvoiceResponse"}},
                    "404": {"description": "Invoice not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Update an invoice",
                "parameters": [
                    {"type": "string", "description": "Invoice ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Customer ID", "name": "customerId", "in": "formData", "required": true},
                    {"type": "number", "description": "Amount in dollars", "name": "amount", "in": "formData", "required": true},
                    {"enum": ["paid", "pending"], "type": "string", "description": "Invoice status", "name": "status", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to the invoice list"},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/model.FormStateResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/model.FormStateResponse"}}
                }
            }
        },
        "/dashboard/invoices/{id}/delete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Delete an invoice",
                "parameters": [{"type": "string", "description": "Invoice ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Invoice deleted", "schema": {"$ref": "#/definitions/model.FormStateResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/model.FormStateResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"type": "string", "description": "Email address", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Where to go after signing in", "name": "callbackUrl", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "Redirect to the dashboard"},
                    "401": {"description": "Sign-in failed", "schema": {"$ref": "#/definitions/model.LoginStateResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"303": {"description": "Redirect to the sign-in page"}}
            }
        }
    },
    "definitions": {
        "model.ErrorDetail": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"$ref": "#/definitions/model.ErrorDetail"}},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "model.FormStateResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "message": {"type": "string"}
            }
        },
        "model.InvoiceResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "amountDisplay": {"type": "string"},
                "customerId": {"type": "string"},
                "date": {"type": "string"},
                "id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "model.LoginStateResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Dashboard API",
	Description:      "Invoice management and sign-in for the dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
