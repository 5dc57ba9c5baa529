package modules

import (
	"encoding/json"
	"expvar"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artwork-marketplace/pkg/response"
)

// DebugModule serves the expvar counters whose names start with Prefix. Runtime
// vars such as cmdline and memstats are left out.
type DebugModule struct {
	Prefix string
}

func NewDebugModule(prefix string) *DebugModule { return &DebugModule{Prefix: prefix} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.vars)
}

func (m *DebugModule) vars(c *gin.Context) {
	out := map[string]json.RawMessage{}
	expvar.Do(func(kv expvar.KeyValue) {
		if strings.HasPrefix(kv.Key, m.Prefix) {
			out[kv.Key] = json.RawMessage(kv.Value.String())
		}
	})
	response.Success(c, http.StatusOK, out, "debug vars", nil)
}
