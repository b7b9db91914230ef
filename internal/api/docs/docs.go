// Package docs OpenAPI 文档，由 /swagger/*any 提供
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/stations/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Validate a station registration form",
                "parameters": [
                    {"type": "string", "description": "form draft id", "name": "X-Draft-ID", "in": "header"},
                    {"description": "station and options", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.stationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/station.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/stations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "List stations of the current organization",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.stationResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Register a station",
                "parameters": [
                    {"type": "string", "description": "form draft id", "name": "X-Draft-ID", "in": "header"},
                    {"description": "station and options", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.stationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.stationResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/station.Result"}}
                }
            }
        },
        "/stations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Get a station",
                "parameters": [
                    {"type": "string", "description": "station id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.stationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Update a station",
                "parameters": [
                    {"type": "string", "description": "station id", "name": "id", "in": "path", "required": true},
                    {"description": "station and options", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.stationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.stationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/station.Result"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "object"}}
            }
        },
        "api.stationRequest": {
            "type": "object",
            "properties": {
                "station": {"$ref": "#/definitions/station.Record"},
                "options": {"$ref": "#/definitions/station.Options"}
            }
        },
        "api.stationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "org_id": {"type": "string"},
                "station": {"$ref": "#/definitions/station.Record"},
                "funding_programs": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "station.PortEntry": {
            "type": "object",
            "properties": {
                "port_id": {"type": "string"},
                "port_type": {"type": "string", "enum": ["J1772", "CCS", "CHAdeMO", "J3400", "OTHER"]},
                "row_id": {"type": "string"}
            }
        },
        "station.Record": {
            "type": "object",
            "properties": {
                "station_id": {"type": "string"},
                "nickname": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zip": {"type": "string"},
                "zip_extended": {"type": "string"},
                "latitude": {"type": "string"},
                "longitude": {"type": "string"},
                "network_provider": {"type": "string"},
                "project_type": {"type": "string"},
                "operational_date": {"type": "string"},
                "federally_funded": {"type": "boolean"},
                "NEVI": {"type": "integer"},
                "CFI": {"type": "integer"},
                "EVC_RAA": {"type": "integer"},
                "CMAQ": {"type": "integer"},
                "CRP": {"type": "integer"},
                "OTHER": {"type": "integer"},
                "num_fed_funded_ports": {"type": "string"},
                "fed_funded_ports": {"type": "array", "items": {"$ref": "#/definitions/station.PortEntry"}},
                "num_non_fed_funded_ports": {"type": "string"},
                "non_fed_funded_ports": {"type": "array", "items": {"$ref": "#/definitions/station.PortEntry"}},
                "authorized_subrecipients": {"type": "array", "items": {"type": "string"}},
                "dr_id": {"type": "string"},
                "AFC": {"type": "integer"}
            }
        },
        "station.Options": {
            "type": "object",
            "properties": {
                "duplicate_station_error": {"type": "boolean"},
                "station_federally_funded": {"type": "boolean"},
                "subrecipients": {"type": "array", "items": {"type": "object"}},
                "fed_ports": {"type": "array", "items": {"type": "object"}},
                "non_fed_ports": {"type": "array", "items": {"type": "object"}}
            }
        },
        "station.Result": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "fields": {"type": "object"},
                "invalid_field": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "missing_required_message": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "custom_errors": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "incorrect_values": {"type": "array", "items": {"type": "string"}},
                "error_subrecipient_row_ids": {"type": "array", "items": {"type": "string"}},
                "error_port_row_ids": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo 文档元信息，BasePath 由路由设置
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EV-ChART Station API",
	Description:      "Station registration validation and storage.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
