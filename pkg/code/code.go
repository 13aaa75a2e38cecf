package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// HTTP 状态码
	statusCode int
	// 状态
	status bool
	// 错误消息
	Lang lang
	// 错误消息
	msg string
	// 数据
	data  interface{}
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
	// 是否含有Data
	haveData bool
}

var codes = map[int]string{}

// NewError 创建错误码，statusCode 为该错误对应的 HTTP 状态码
func NewError(code int, statusCode int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}

	codes[code] = l.GetMessage()

	return &Code{code: code, statusCode: statusCode, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss 创建成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, statusCode: http.StatusOK, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本
// 全局码对象是共享的，With* 方法在副本上附加数据，避免并发污染
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		statusCode: e.statusCode,
		status:     e.status,
		Lang:       e.Lang,
		msg:        e.msg,
	}
}

// Error 实现 error 接口，便于在 service 层作为错误返回
func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Msgf(args []interface{}) string {
	return fmt.Sprintf(e.msg, args...)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// StatusCode 返回该码对应的 HTTP 状态码
func (e *Code) StatusCode() int {
	if e.statusCode == 0 {
		return http.StatusOK
	}
	return e.statusCode
}
