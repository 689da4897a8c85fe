// Package docs registers the OpenAPI description served at /swagger/.
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
        "/about": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard description",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AboutInfo"}}
                }
            }
        },
        "/indicators": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "List indicators",
                "responses": {
                    "200": {"description": "indicators and count", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Data file not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Data file unusable", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Load error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/years": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "List years",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Indicator name (repeatable)", "name": "indicator", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "years", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Data file not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "description": "KPIs and one chart artifact for the selected indicators. An indicator without rows yields a warning and no KPIs.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Render the dashboard",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Indicator name (repeatable), defaults to the first indicator", "name": "indicator", "in": "query"},
                    {"type": "string", "description": "Chart kind, e.g. line or \"Box Plot\"", "name": "chart", "in": "query"},
                    {"type": "boolean", "description": "Include the subset rows", "name": "raw", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DashboardView"}},
                    "400": {"description": "Invalid chart kind", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Data file not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Data file unusable", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Load error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/charts/{kind}": {
            "get": {
                "produces": ["image/png", "image/svg+xml", "text/html", "application/json"],
                "tags": ["charts"],
                "summary": "Render a chart",
                "parameters": [
                    {"type": "string", "description": "Chart kind", "name": "kind", "in": "path", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Indicator name (repeatable)", "name": "indicator", "in": "query"},
                    {"type": "string", "description": "png (default), svg, html or json", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Invalid chart kind or format", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "No data", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/sparkline": {
            "get": {
                "produces": ["image/svg+xml"],
                "tags": ["charts"],
                "summary": "Indicator sparkline",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Indicator name (repeatable)", "name": "indicator", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "No data", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/compare": {
            "get": {
                "description": "One value per selected indicator for the given year, as a bar artifact",
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Year comparison",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Indicator name (repeatable)", "name": "indicator", "in": "query", "required": true},
                    {"type": "integer", "description": "Year", "name": "year", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "values and artifact", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Missing or invalid year", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "No data for that year", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/export": {
            "get": {
                "description": "Year, Indicator Name, Indicator Code and Value of the selected rows",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/vnd.apache.parquet"],
                "tags": ["export"],
                "summary": "Download data",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Indicator name (repeatable)", "name": "indicator", "in": "query"},
                    {"type": "string", "description": "csv (default), xlsx or parquet", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "No data", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/loads": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "Load and export log",
                "parameters": [
                    {"type": "integer", "description": "Maximum events per list (default 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "summary, loads and exports", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/reload": {
            "post": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "Reload data file",
                "responses": {
                    "200": {"description": "records, indicators and signature", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Data file not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Schema, parse or empty file", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.AboutInfo": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "data_file": {"type": "string"},
                "key_indicators": {"type": "array", "items": {"type": "string"}},
                "chart_kinds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.KPI": {
            "type": "object",
            "properties": {
                "max": {"type": "number"},
                "min": {"type": "number"},
                "mean": {"type": "number"},
                "max_text": {"type": "string"},
                "min_text": {"type": "string"},
                "avg_text": {"type": "string"}
            }
        },
        "model.DashboardView": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "indicators": {"type": "array", "items": {"type": "string"}},
                "chart": {"type": "string"},
                "kpi": {"$ref": "#/definitions/model.KPI"},
                "artifact": {"type": "object"},
                "warning": {"type": "string"},
                "records": {"type": "array", "items": {"type": "object"}},
                "export_name": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "kind": {"type": "string"}
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
	Title:            "Trade Indicator Dashboard API",
	Description:      "Indicators, KPIs, charts and downloads for one country's trade indicator file.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
