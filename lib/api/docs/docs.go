// Package docs holds the swagger document served under /swagger/. It uses
// the layout swag emits, so `go generate ./lib/api` can rewrite it from the
// annotations in lib/api.
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
        "/api/quit": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "base"
                ],
                "summary": "Ask the renderer to exit after the current frame",
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/shaders": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "base"
                ],
                "summary": "Source text of the shader program in use",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.ShadersResponse"
                        }
                    }
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "base"
                ],
                "summary": "Renderer statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/stats.Snapshot"
                        }
                    }
                }
            }
        },
        "/api/ws": {
            "get": {
                "tags": [
                    "base"
                ],
                "summary": "Open websocket for realtime status information",
                "parameters": [
                    {
                        "type": "string",
                        "description": "websocket",
                        "name": "Upgrade",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    }
                }
            }
        }
    },
    "definitions": {
        "api.ShadersResponse": {
            "type": "object",
            "properties": {
                "fragment": {
                    "type": "string"
                },
                "vertex": {
                    "type": "string"
                }
            }
        },
        "stats.Snapshot": {
            "type": "object",
            "properties": {
                "fps": {
                    "type": "integer"
                },
                "frames": {
                    "type": "integer"
                },
                "shader_reloads": {
                    "type": "integer"
                },
                "uptime": {
                    "type": "number"
                },
                "ws_clients": {
                    "type": "integer"
                }
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
	Title:            "glhello API",
	Description:      "Live status and control of the glhello renderer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
