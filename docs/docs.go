// Package docs 注册 Swagger 文档
// 接口注解写在 internal/handler 下，可以用 swag init -g main.go 重新生成本文件
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
    "paths": {
        "/health": {"get": {"tags": ["系统"], "summary": "健康检查", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["系统"], "summary": "就绪检查", "responses": {"200": {"description": "OK"}, "503": {"description": "依赖不可用"}}}},
        "/api/v1/timelines": {"post": {"tags": ["时间轴"], "summary": "合成时间轴", "responses": {"200": {"description": "OK"}, "400": {"description": "请求参数错误或文档校验失败"}, "422": {"description": "不支持的文档版本"}}}},
        "/api/v1/timelines/sample": {"post": {"tags": ["时间轴"], "summary": "采样时间轴", "responses": {"200": {"description": "OK"}, "400": {"description": "区间无效"}}}},
        "/api/v1/documents/build": {"post": {"tags": ["时间轴"], "summary": "构建规范文档", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/projects": {
            "get": {"tags": ["项目管理"], "summary": "项目列表", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["项目管理"], "summary": "创建项目", "responses": {"200": {"description": "OK"}, "503": {"description": "未配置持久化"}}}
        },
        "/api/v1/projects/{project_id}": {
            "get": {"tags": ["项目管理"], "summary": "获取项目", "responses": {"200": {"description": "OK"}, "404": {"description": "项目不存在"}}},
            "put": {"tags": ["项目管理"], "summary": "更新项目文档", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["项目管理"], "summary": "删除项目", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/projects/{project_id}/timeline": {"get": {"tags": ["时间轴"], "summary": "获取项目时间轴", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/projects/{project_id}/frames/{frame}": {"get": {"tags": ["时间轴"], "summary": "采样项目的某一帧", "responses": {"200": {"description": "OK"}, "400": {"description": "帧号无效"}}}},
        "/api/v1/projects/{project_id}/export": {"post": {"tags": ["时间轴"], "summary": "导出项目时间轴", "responses": {"200": {"description": "OK"}, "503": {"description": "未配置存储"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Montage API",
	Description:      "视频时间轴合成服务：文档构建、时间轴合成、逐帧采样与导出",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
