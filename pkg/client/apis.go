package client

import (
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func (c *Client) GetPowerStatus(refresh bool) (*powerinfo.Record, error) {
	ret, err := c.Get("/power-status" + refreshQuery(refresh))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get power status")
	}

	var rec powerinfo.Record
	if err := json.Unmarshal([]byte(ret), &rec); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal power status")
	}
	return &rec, nil
}

func (c *Client) GetACPower(refresh bool) (bool, error) {
	ret, err := c.Get("/ac-power" + refreshQuery(refresh))
	if err != nil {
		return false, pkgerrors.Wrapf(err, "failed to get AC power status")
	}
	return parseBoolResponse(ret)
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get daemon version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal daemon version")
	}
	return v, nil
}

func refreshQuery(refresh bool) string {
	if refresh {
		return "?refresh=true"
	}
	return ""
}

func parseBoolResponse(resp string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(resp))
	if err != nil {
		return false, pkgerrors.Wrapf(err, "failed to parse %q as bool", resp)
	}
	return b, nil
}
