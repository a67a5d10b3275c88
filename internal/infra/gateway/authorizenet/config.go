// Package authorizenet talks to Authorize.net through the legacy AIM form API and the CIM
// XML profile API.
package authorizenet

import (
	"storefront-checkout/internal/pkg/config"
)

const Name = "Authorize.net"

const (
	aimTestURL = "https://test.authorize.net/gateway/transact.dll"
	aimLiveURL = "https://secure.authorize.net/gateway/transact.dll"
	cimTestURL = "https://apitest.authorize.net/xml/v1/request.api"
	cimLiveURL = "https://api.authorize.net/xml/v1/request.api"
)

type Credentials struct {
	LoginID        string
	TransactionKey string
	Test           bool
}

func (c Credentials) Missing() bool {
	return c.LoginID == "" || c.TransactionKey == ""
}

type Config struct {
	Credentials
	AIMURL       string
	CIMURL       string
	CIMRetries   int
	SaveProfiles bool
}

func NewConfig(cfg config.GatewayConfig) Config {
	c := Config{
		Credentials: Credentials{
			LoginID:        cfg.LoginID,
			TransactionKey: cfg.TransactionKey,
			Test:           cfg.Test,
		},
		AIMURL:       cfg.AIMURL,
		CIMURL:       cfg.CIMURL,
		CIMRetries:   cfg.CIMRetries,
		SaveProfiles: cfg.SaveProfiles,
	}
	if c.AIMURL == "" {
		c.AIMURL = aimLiveURL
		if c.Test {
			c.AIMURL = aimTestURL
		}
	}
	if c.CIMURL == "" {
		c.CIMURL = cimLiveURL
		if c.Test {
			c.CIMURL = cimTestURL
		}
	}
	if c.CIMRetries < 1 {
		c.CIMRetries = 1
	}
	return c
}
