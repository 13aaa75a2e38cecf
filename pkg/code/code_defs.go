package code

import "net/http"

// 成功码
var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
)

// 通用错误码
var (
	ErrorInvalidParams        = NewError(10001, http.StatusBadRequest, lang{en: "Invalid params", zh_cn: "入参错误"})
	ErrorNotUserAuthToken     = NewError(10002, http.StatusUnauthorized, lang{en: "Auth token is missing", zh_cn: "缺少用户认证令牌"})
	ErrorInvalidUserAuthToken = NewError(10003, http.StatusForbidden, lang{en: "Auth token is invalid", zh_cn: "用户认证令牌无效"})
	ErrorNotFoundAPI          = NewError(10004, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorNotFound             = NewError(10005, http.StatusNotFound, lang{en: "Resource not found", zh_cn: "资源不存在"})
	ErrorTooManyRequests      = NewError(10006, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorServerInternal       = NewError(10007, http.StatusInternalServerError, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorDBQueryFail          = NewError(10008, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
)

// 用户模块错误码
var (
	ErrorUserNotExist       = NewError(20001, http.StatusNotFound, lang{en: "User does not exist", zh_cn: "用户不存在"})
	ErrorUserAlreadyExists  = NewError(20002, http.StatusBadRequest, lang{en: "User already exists", zh_cn: "用户已存在"})
	ErrorUserPasswordError  = NewError(20003, http.StatusBadRequest, lang{en: "Incorrect account or password", zh_cn: "账号或密码错误"})
	ErrorUserRegisterClosed = NewError(20004, http.StatusForbidden, lang{en: "Registration is disabled", zh_cn: "注册已关闭"})
	ErrorCreateTokenFail    = NewError(20005, http.StatusInternalServerError, lang{en: "Failed to create auth token", zh_cn: "创建认证令牌失败"})
)

// 历史记录模块错误码
var (
	ErrorHistoryNotFound   = NewError(30001, http.StatusNotFound, lang{en: "History not found", zh_cn: "历史记录不存在"})
	ErrorHistoryReadFail   = NewError(30002, http.StatusInternalServerError, lang{en: "Failed to read history", zh_cn: "读取历史记录失败"})
	ErrorHistoryWriteFail  = NewError(30003, http.StatusInternalServerError, lang{en: "Failed to write history", zh_cn: "写入历史记录失败"})
	ErrorHistoryBadPayload = NewError(30004, http.StatusBadRequest, lang{en: "History payload is not a valid array", zh_cn: "历史记录载荷不是有效数组"})
)

// 笔记模块错误码
var (
	ErrorNoteNotExist  = NewError(40001, http.StatusNotFound, lang{en: "Note does not exist", zh_cn: "笔记不存在"})
	ErrorNoteSaveFail  = NewError(40002, http.StatusInternalServerError, lang{en: "Failed to save note", zh_cn: "保存笔记失败"})
	ErrorNoteInvalidID = NewError(40003, http.StatusBadRequest, lang{en: "Note id is invalid", zh_cn: "笔记 ID 无效"})
)
