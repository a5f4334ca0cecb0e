// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/foodaware/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Service is alive", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service is degraded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/recommendations": {
            "get": {
                "description": "Blends the collaborative, content-based and context-aware filters with the configured weights.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Hybrid recommendations",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "description": "Weather condition", "name": "weather", "in": "query"},
                    {"type": "string", "description": "Mood", "name": "mood", "in": "query"},
                    {"type": "integer", "description": "Number of items (0-100)", "name": "n", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/recommendations/{filter}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Single-filter recommendations",
                "parameters": [
                    {"enum": ["collaborative", "content", "context"], "type": "string", "description": "Filter", "name": "filter", "in": "path", "required": true},
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "description": "Weather condition", "name": "weather", "in": "query"},
                    {"type": "string", "description": "Mood", "name": "mood", "in": "query"},
                    {"type": "integer", "description": "Number of items (0-100)", "name": "n", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "Unknown filter", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/mood": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Detect mood",
                "parameters": [
                    {"description": "Text to classify", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.MoodRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "502": {"description": "Mood detector failed", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/weather": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Current weather",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "city", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Missing city", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "502": {"description": "Weather lookup failed", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/restaurants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Nearby restaurants",
                "parameters": [
                    {"type": "string", "description": "Latitude and longitude", "name": "location", "in": "query", "required": true},
                    {"type": "string", "description": "Search keyword", "name": "keyword", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Missing location", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Get user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "Unknown user", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/foods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List foods",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Record an order",
                "parameters": [
                    {"description": "Order", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.OrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Order stored", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "202": {"description": "Order accepted for storage", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Event bus unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/analytics/popular-foods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Most ordered foods",
                "parameters": [
                    {"type": "integer", "description": "Number of foods (1-50, default 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/analytics/weather-categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Weather by category order counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/analytics/mood-categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Mood by category order counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/chat/ws": {
            "get": {
                "description": "Upgrades to a WebSocket. Send {\"text\", \"city\", \"user_id\"}; each frame is answered with the detected mood, the weather and recommendations.",
                "tags": ["Chat"],
                "summary": "Chat WebSocket",
                "responses": {
                    "101": {"description": "Switching protocols"},
                    "503": {"description": "Chat unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.MoodRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "api.OrderRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "food_id": {"type": "string"},
                "mood": {"type": "string"},
                "weather": {"type": "string"},
                "location": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5}
            }
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "request_id": {"type": "string"},
                "query_time_ms": {"type": "integer"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3857",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "FoodAware API",
	Description:      "Context-aware food recommendations from order history, mood and weather.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
