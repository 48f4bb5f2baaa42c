package daemon

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
	"github.com/charlie0129/powerstate/pkg/version"
)

func (d *Daemon) record(c *gin.Context) (*powerinfo.Record, bool) {
	refresh := false
	if v := c.Query("refresh"); v != "" {
		var err error
		refresh, err = strconv.ParseBool(v)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			_ = c.AbortWithError(http.StatusBadRequest, err)
			return nil, false
		}
	}

	if refresh {
		return d.Refresh(), true
	}
	return d.Latest(), true
}

func (d *Daemon) getPowerStatus(c *gin.Context) {
	rec, ok := d.record(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, rec)
}

func (d *Daemon) getACPower(c *gin.Context) {
	rec, ok := d.record(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, rec.IsUsingACPower)
}

func (d *Daemon) getLaptop(c *gin.Context) {
	rec, ok := d.record(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, rec.IsLaptop)
}

func (d *Daemon) getEvents(c *gin.Context) {
	ch := d.hub.Subscribe()
	defer d.hub.Unsubscribe(ch)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
