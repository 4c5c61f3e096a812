// Package docs 保存 swag 生成的 OpenAPI 描述，接口注释变更后用 `swag init -g cmd/keepsake/main.go` 重新生成.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "yeisme"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/license/mit/"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/admin": {
            "post": {
                "tags": [
                    "管理"
                ],
                "summary": "管理动作",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.AdminEnvelope"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/admin/media": {
            "post": {
                "tags": [
                    "管理"
                ],
                "summary": "管理端媒体上传",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "管理口令",
                        "name": "password",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "milestones 或 firsts",
                        "name": "folder",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "媒体文件",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.AdminMediaResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/api/v1/gallery": {
            "get": {
                "tags": [
                    "投稿"
                ],
                "summary": "画廊",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "image 或 video",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.UploadsResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/uploads": {
            "post": {
                "tags": [
                    "投稿"
                ],
                "summary": "提交投稿",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "投稿人",
                        "name": "name",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "留言",
                        "name": "message",
                        "in": "formData",
                        "required": false
                    },
                    {
                        "type": "file",
                        "description": "照片或视频，可多个",
                        "name": "files",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/types.UploadsResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/api/v1/wishes": {
            "get": {
                "tags": [
                    "祝福"
                ],
                "summary": "祝福列表",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.WishesResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "祝福"
                ],
                "summary": "提交祝福",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.CreateWishRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/types.WishResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/voice-notes": {
            "get": {
                "tags": [
                    "语音"
                ],
                "summary": "语音列表",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.VoiceNotesResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "语音"
                ],
                "summary": "提交语音",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "留言人",
                        "name": "name",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "number",
                        "description": "时长（秒）",
                        "name": "duration",
                        "in": "formData",
                        "required": false
                    },
                    {
                        "type": "file",
                        "description": "音频",
                        "name": "audio",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/types.VoiceNoteResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/api/v1/letters/count": {
            "get": {
                "tags": [
                    "信件"
                ],
                "summary": "信件数量",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.LetterCountResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/letters": {
            "post": {
                "tags": [
                    "信件"
                ],
                "summary": "封存信件",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.SealLetterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/types.SuccessResponse"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/milestones": {
            "get": {
                "tags": [
                    "时间线"
                ],
                "summary": "里程碑列表",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.MilestonesResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/firsts": {
            "get": {
                "tags": [
                    "时间线"
                ],
                "summary": "第一次看板",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/types.FirstsResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/health/db": {
            "get": {
                "tags": [
                    "运维"
                ],
                "summary": "db 健康检查",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "503": {
                        "description": "unhealthy"
                    }
                }
            }
        },
        "/api/v1/health/s3": {
            "get": {
                "tags": [
                    "运维"
                ],
                "summary": "s3 健康检查",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "503": {
                        "description": "unhealthy"
                    }
                }
            }
        },
        "/api/v1/health/mq": {
            "get": {
                "tags": [
                    "运维"
                ],
                "summary": "mq 健康检查",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "503": {
                        "description": "unhealthy"
                    }
                }
            }
        },
        "/api/v1/health/kv": {
            "get": {
                "tags": [
                    "运维"
                ],
                "summary": "kv 健康检查",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "503": {
                        "description": "unhealthy"
                    }
                }
            }
        },
        "/api/v1/scheduler/jobs": {
            "get": {
                "tags": [
                    "运维"
                ],
                "summary": "定时任务状态",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "types.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                }
            }
        },
        "types.AdminEnvelope": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "uploadId": {
                    "type": "string"
                },
                "milestoneId": {
                    "type": "string"
                },
                "mediaId": {
                    "type": "string"
                },
                "fileUrl": {
                    "type": "string"
                },
                "fileType": {
                    "type": "string"
                },
                "caption": {
                    "type": "string"
                },
                "firstId": {
                    "type": "string"
                },
                "photoUrl": {
                    "type": "string"
                }
            }
        },
        "types.AdminMediaResponse": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                },
                "file_type": {
                    "type": "string"
                }
            }
        },
        "model.FamilyUpload": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "uploader_name": {
                    "type": "string"
                },
                "memory_message": {
                    "type": "string"
                },
                "file_url": {
                    "type": "string"
                },
                "file_type": {
                    "type": "string"
                },
                "approved": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "model.MilestoneMedia": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "milestone_id": {
                    "type": "string"
                },
                "file_url": {
                    "type": "string"
                },
                "file_type": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "model.Milestone": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "month_number": {
                    "type": "integer"
                },
                "month_label": {
                    "type": "string"
                },
                "caption": {
                    "type": "string"
                },
                "milestone_media": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.MilestoneMedia"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "model.BabyFirst": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "milestone_key": {
                    "type": "string"
                },
                "milestone_title": {
                    "type": "string"
                },
                "caption": {
                    "type": "string"
                },
                "photo_url": {
                    "type": "string"
                },
                "display_order": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "model.GuestWish": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "guest_name": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "model.VoiceNote": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "sender_name": {
                    "type": "string"
                },
                "audio_url": {
                    "type": "string"
                },
                "duration_seconds": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "types.UploadsResponse": {
            "type": "object",
            "properties": {
                "uploads": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.FamilyUpload"
                    }
                }
            }
        },
        "types.MilestonesResponse": {
            "type": "object",
            "properties": {
                "milestones": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.Milestone"
                    }
                }
            }
        },
        "types.FirstsResponse": {
            "type": "object",
            "properties": {
                "firsts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.BabyFirst"
                    }
                }
            }
        },
        "types.WishesResponse": {
            "type": "object",
            "properties": {
                "wishes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.GuestWish"
                    }
                }
            }
        },
        "types.WishResponse": {
            "type": "object",
            "properties": {
                "wish": {
                    "$ref": "#/definitions/model.GuestWish"
                }
            }
        },
        "types.VoiceNotesResponse": {
            "type": "object",
            "properties": {
                "voice_notes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.VoiceNote"
                    }
                }
            }
        },
        "types.VoiceNoteResponse": {
            "type": "object",
            "properties": {
                "voice_note": {
                    "$ref": "#/definitions/model.VoiceNote"
                }
            }
        },
        "types.CreateWishRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "types.SealLetterRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                }
            }
        },
        "types.LetterCountResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo 文档元信息，Host 与 Version 在注册路由时按配置覆盖.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Keepsake API",
	Description:      "Keepsake 是宝宝周岁纪念站点的后端：家人投稿与审核、成长时间线、祝福墙、语音留言和写给未来的信.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
