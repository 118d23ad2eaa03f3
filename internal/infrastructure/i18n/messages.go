package i18n

import (
	apptag "github.com/thankyou/backend/internal/application/tag"
	appthankyou "github.com/thankyou/backend/internal/application/thankyou"
	"github.com/thankyou/backend/internal/domain/setting"
)

// Problem titles
const (
	TitleThankYouCreate       = "thankyou.error.create"
	TitleThankYouModify       = "thankyou.error.modify"
	TitleThankYouDelete       = "thankyou.error.delete"
	TitleThankYouNotFound     = "thankyou.error.not_found"
	TitleThankYouNoPermission = "thankyou.error.no_permission"
	TitleTagCreate            = "tag.error.create"
	TitleTagModify            = "tag.error.modify"
	TitleTagNotFound          = "tag.error.not_found"
	TitleConfigInvalid        = "config.error.invalid"
	TitleConfigNoPermission   = "config.error.no_permission"
	TitleBadBody              = "request.error.bad_body"
	TitleBadID                = "request.error.bad_id"
	TitleBadQuery             = "request.error.bad_query"
	TitleBadRequest           = "request.error.bad_request"
	TitleNoRoute              = "request.error.no_route"
	TitleMethodNotAllowed     = "request.error.method_not_allowed"
	TitleBodyTooLarge         = "request.error.body_too_large"
	TitleUnauthorized         = "request.error.unauthorized"
	TitleServer               = "error.server"
)

// Query parameter reasons
const (
	CodeParamInteger = "request.param.integer"
	CodeParamMin     = "request.param.min"
	CodeParamOneOf   = "request.param.one_of"
	CodeParamInvalid = "request.param.invalid"
)

var english = map[string]string{
	appthankyou.CodeThankedEmpty:       "Thank at least one person or group.",
	appthankyou.CodeThankedNotArray:    "The thanked list must be an array.",
	appthankyou.CodeOwnerClassNotFound: "Only the following can be thanked: %s.",
	appthankyou.CodeThankableNotFound:  "%s with id %s does not exist.",
	appthankyou.CodeDescriptionEmpty:   "The description must not be empty.",
	appthankyou.CodeDescriptionString:  "The description must be text.",
	appthankyou.CodeTagsDisabled:       "Tags are disabled.",
	appthankyou.CodeTagsNotArray:       "Tags must be an array.",
	appthankyou.CodeTagsNotIntegers:    "Tag ids must be integers.",
	appthankyou.CodeTagNotFound:        "Tag %s does not exist.",
	appthankyou.CodeTagsMandatory:      "Select at least one tag.",

	apptag.CodeNameUndefined:  "A name is required.",
	apptag.CodeNameInvalid:    "The name must be text.",
	apptag.CodeNameEmpty:      "The name must not be empty.",
	apptag.CodeNameTooLong:    "The name must be at most %s characters long.",
	apptag.CodeNameCharset:    "The name contains characters that are not allowed.",
	apptag.CodeNameNotUnique:  "A tag with this name already exists.",
	apptag.CodeBgColourString: "The background colour must be text.",

	setting.CodeOptionUnknown: "Unknown option.",
	setting.CodeOptionInvalid: "The value has the wrong type.",

	CodeParamInteger: "Must be an integer.",
	CodeParamMin:     "Must be at least %s.",
	CodeParamOneOf:   "Must be one of: %s.",
	CodeParamInvalid: "Invalid value.",

	TitleThankYouCreate:       "The thank you could not be created.",
	TitleThankYouModify:       "The thank you could not be modified.",
	TitleThankYouDelete:       "The thank you could not be deleted.",
	TitleThankYouNotFound:     "Thank you not found.",
	TitleThankYouNoPermission: "You are not allowed to change this thank you.",
	TitleTagCreate:            "The tag could not be created.",
	TitleTagModify:            "The tag could not be modified.",
	TitleTagNotFound:          "Tag not found.",
	TitleConfigInvalid:        "The configuration could not be saved.",
	TitleConfigNoPermission:   "You are not allowed to change the configuration.",
	TitleBadBody:              "The request body must be a JSON object.",
	TitleBadID:                "The identifier must be a positive integer.",
	TitleBadQuery:             "The query parameters are invalid.",
	TitleBadRequest:           "The request could not be processed.",
	TitleNoRoute:              "No such resource.",
	TitleMethodNotAllowed:     "Method not allowed.",
	TitleBodyTooLarge:         "The request body is too large.",
	TitleUnauthorized:         "Authentication required.",
	TitleServer:               "An internal error occurred.",
}

var simplifiedChinese = map[string]string{
	appthankyou.CodeThankedEmpty:       "请至少感谢一个人或一个小组。",
	appthankyou.CodeThankedNotArray:    "感谢对象必须是数组。",
	appthankyou.CodeOwnerClassNotFound: "只能感谢以下类型：%s。",
	appthankyou.CodeThankableNotFound:  "ID 为 %[2]s 的%[1]s不存在。",
	appthankyou.CodeDescriptionEmpty:   "描述不能为空。",
	appthankyou.CodeDescriptionString:  "描述必须是文本。",
	appthankyou.CodeTagsDisabled:       "标签功能已关闭。",
	appthankyou.CodeTagsNotArray:       "标签必须是数组。",
	appthankyou.CodeTagsNotIntegers:    "标签 ID 必须是整数。",
	appthankyou.CodeTagNotFound:        "标签 %s 不存在。",
	appthankyou.CodeTagsMandatory:      "请至少选择一个标签。",

	apptag.CodeNameUndefined:  "名称为必填项。",
	apptag.CodeNameInvalid:    "名称必须是文本。",
	apptag.CodeNameEmpty:      "名称不能为空。",
	apptag.CodeNameTooLong:    "名称最多 %s 个字符。",
	apptag.CodeNameCharset:    "名称包含不允许的字符。",
	apptag.CodeNameNotUnique:  "已存在同名标签。",
	apptag.CodeBgColourString: "背景颜色必须是文本。",

	setting.CodeOptionUnknown: "未知的配置项。",
	setting.CodeOptionInvalid: "配置值类型错误。",

	CodeParamInteger: "必须是整数。",
	CodeParamMin:     "不能小于 %s。",
	CodeParamOneOf:   "必须是以下值之一：%s。",
	CodeParamInvalid: "无效的值。",

	TitleThankYouCreate:       "无法创建感谢。",
	TitleThankYouModify:       "无法修改感谢。",
	TitleThankYouDelete:       "无法删除感谢。",
	TitleThankYouNotFound:     "未找到该感谢。",
	TitleThankYouNoPermission: "你无权修改此感谢。",
	TitleTagCreate:            "无法创建标签。",
	TitleTagModify:            "无法修改标签。",
	TitleTagNotFound:          "未找到该标签。",
	TitleConfigInvalid:        "无法保存配置。",
	TitleConfigNoPermission:   "你无权修改配置。",
	TitleBadBody:              "请求体必须是 JSON 对象。",
	TitleBadID:                "标识符必须是正整数。",
	TitleBadQuery:             "查询参数无效。",
	TitleBadRequest:           "无法处理该请求。",
	TitleNoRoute:              "资源不存在。",
	TitleMethodNotAllowed:     "不支持该请求方法。",
	TitleBodyTooLarge:         "请求体过大。",
	TitleUnauthorized:         "需要登录。",
	TitleServer:               "服务器内部错误。",
}
