// Package docs registers the OpenAPI document for the JSON endpoints.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
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
        "/api/jobs/{jobID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Analysis job status",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "jobID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Job status", "schema": {"$ref": "#/definitions/models.JobStatus"}},
                    "404": {"description": "Unknown job", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/leaderboard": {
            "get": {
                "description": "Entries in backend order with rank, display labels and the top three flagged",
                "produces": ["application/json"],
                "tags": ["Leaderboards"],
                "summary": "Rizz Leaderboard",
                "responses": {
                    "200": {"description": "Leaderboard", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Backend Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.JobStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "id": {"type": "string"},
                "progress": {"type": "integer"},
                "reason": {"type": "string"},
                "result_id": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "models.RankedEntry": {
            "type": "object",
            "properties": {
                "count_label": {"type": "string"},
                "nickname": {"type": "string"},
                "rank": {"type": "integer"},
                "score": {"type": "number"},
                "score_label": {"type": "string"},
                "top_three": {"type": "boolean"},
                "total_scores": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Rizz Web API",
	Description:      "JSON endpoints of the rizz calculator web front-end.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
