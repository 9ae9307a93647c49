// Package docs 注册 Swagger 文档，接口变更后用 swag init 重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"termsOfService": "http://swagger.io/terms/",
		"license": {
			"name": "Apache 2.0",
			"url": "http://www.apache.org/licenses/LICENSE-2.0.html"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/articles": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "创建文章",
				"parameters": [
					{
						"description": "文章内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "创建成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "获取全部文章",
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			}
		},
		"/api/articles/multi": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "批量创建文章",
				"parameters": [
					{
						"description": "文章数组",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "创建成功"
					},
					"400": {
						"description": "请求参数无效"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/articles/random": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "每个分类随机推荐一篇文章",
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			}
		},
		"/api/articles/trending": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "按阅读量获取热门文章",
				"parameters": [
					{
						"type": "integer",
						"description": "返回数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			}
		},
		"/api/articles/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "获取文章并增加阅读量",
				"parameters": [
					{
						"type": "integer",
						"description": "文章 ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			},
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "修改文章",
				"parameters": [
					{
						"type": "integer",
						"description": "文章 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "要修改的字段",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "删除文章",
				"parameters": [
					{
						"type": "integer",
						"description": "文章 ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/articles/{id}/thumbnail": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "上传文章缩略图",
				"parameters": [
					{
						"type": "integer",
						"description": "文章 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"description": "缩略图文件",
						"name": "thumbnail",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"multipart/form-data"
				]
			}
		},
		"/api/user/articles/{user_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"articles (文章)"
				],
				"summary": "获取用户发表的文章",
				"parameters": [
					{
						"type": "integer",
						"description": "用户 ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/articles/{id}/comment": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"comments (评论)"
				],
				"summary": "发表文章评论",
				"parameters": [
					{
						"type": "integer",
						"description": "文章 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "评论内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "评论成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/articles/{id}/comments/{commentId}/reply": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"comments (评论)"
				],
				"summary": "回复文章评论",
				"parameters": [
					{
						"type": "integer",
						"description": "文章 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "评论 ID",
						"name": "commentId",
						"in": "path",
						"required": true
					},
					{
						"description": "回复内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "回复成功"
					},
					"401": {
						"description": "未登录"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/comments/{postId}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"comments (评论)"
				],
				"summary": "发表帖子评论",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"description": "评论内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "评论成功"
					},
					"401": {
						"description": "未登录"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/comments/reply/{commentId}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"comments (评论)"
				],
				"summary": "回复帖子评论",
				"parameters": [
					{
						"type": "integer",
						"description": "父评论 ID",
						"name": "commentId",
						"in": "path",
						"required": true
					},
					{
						"description": "回复内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "回复成功"
					},
					"401": {
						"description": "未登录"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/posts/{postId}/comments": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"comments (评论)"
				],
				"summary": "获取帖子的全部评论",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/auth/signup": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth (认证)"
				],
				"summary": "注册新用户",
				"parameters": [
					{
						"description": "注册信息",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "注册成功"
					},
					"400": {
						"description": "请求参数无效"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/auth/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth (认证)"
				],
				"summary": "用户登录",
				"parameters": [
					{
						"description": "登录信息",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "登录成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"401": {
						"description": "邮箱不存在或密码错误"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/auth/logout": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth (认证)"
				],
				"summary": "退出登录",
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			}
		},
		"/api/users": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users (用户)"
				],
				"summary": "获取全部用户",
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			}
		},
		"/api/user/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users (用户)"
				],
				"summary": "获取用户",
				"parameters": [
					{
						"type": "integer",
						"description": "用户 ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/profile/create/{id}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users (用户)"
				],
				"summary": "修改个人资料",
				"parameters": [
					{
						"type": "integer",
						"description": "用户 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "资料字段",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/profile/avatar/{id}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users (用户)"
				],
				"summary": "上传头像",
				"parameters": [
					{
						"type": "integer",
						"description": "用户 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"description": "头像文件",
						"name": "avatar",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"multipart/form-data"
				]
			}
		},
		"/api/verify/{id}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users (用户)"
				],
				"summary": "标记用户为已认证",
				"parameters": [
					{
						"type": "integer",
						"description": "用户 ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/follow/{userId}/{followUserId}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"follow (关注)"
				],
				"summary": "关注用户",
				"parameters": [
					{
						"type": "integer",
						"description": "关注者 ID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "被关注者 ID",
						"name": "followUserId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"follow (关注)"
				],
				"summary": "取消关注",
				"parameters": [
					{
						"type": "integer",
						"description": "关注者 ID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "被关注者 ID",
						"name": "followUserId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/posts": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "获取全部帖子",
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "创建帖子",
				"parameters": [
					{
						"description": "帖子内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "创建成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"401": {
						"description": "未登录"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/posts/{postId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "获取帖子",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "编辑帖子",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"description": "帖子内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"401": {
						"description": "未登录"
					},
					"403": {
						"description": "无权限"
					},
					"404": {
						"description": "资源不存在"
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "删除帖子",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"401": {
						"description": "未登录"
					},
					"403": {
						"description": "无权限"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/posts/{postId}/like": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "点赞帖子",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"401": {
						"description": "未登录"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/posts/{postId}/unlike": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "取消点赞",
				"parameters": [
					{
						"type": "integer",
						"description": "帖子 ID",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					},
					"401": {
						"description": "未登录"
					},
					"404": {
						"description": "资源不存在"
					}
				}
			}
		},
		"/api/posts/tags/{tag}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "按标签获取帖子",
				"parameters": [
					{
						"type": "string",
						"description": "标签",
						"name": "tag",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					}
				}
			}
		},
		"/api/posts/author/{authorId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "获取指定作者的帖子",
				"parameters": [
					{
						"type": "integer",
						"description": "作者 ID",
						"name": "authorId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					}
				}
			}
		},
		"/api/posts/date/{month}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"posts (帖子)"
				],
				"summary": "获取某个月份发布的帖子",
				"parameters": [
					{
						"type": "integer",
						"description": "月份 1-12",
						"name": "month",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "成功"
					},
					"400": {
						"description": "请求参数无效"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "localhost:8083",
	BasePath:		 "/",
	Schemes:		  []string{"http", "https"},
	Title:			"Blog Service API",
	Description:	  "博客服务：文章与内嵌评论、用户资料与关注关系、会话认证、带标签的帖子及其评论。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
