package response

import (
	"net/http"

	"keyimport-core/pkg/importer"

	"github.com/gin-gonic/gin"
)

// Response defines the standard JSON structure
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// OK is the code carried by successful responses.
const OK = "OK"

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    OK,
		Message: "success",
		Data:    data,
	})
}

// Error returns an error response. The envelope carries only the stable
// code and its message; import error messages never contain input bytes.
func Error(c *gin.Context, err error) {
	code, msg := importer.Decode(err)
	c.JSON(http.StatusOK, Response{
		Code:    string(code),
		Message: msg,
		Data:    gin.H{},
	})
}
