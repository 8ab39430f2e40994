package pricing

import (
	"github.com/openquant/pricing-service/internal/service"
	"github.com/openquant/pricing-service/internal/storage"
)

// Client provides a clean public API for the pricing service
type Client struct {
	service *service.PricingService
}

// NewClient creates a new pricing service client
func NewClient(options ...ServiceOption) (*Client, error) {
	svc, err := service.NewPricingService(options...)
	if err != nil {
		return nil, err
	}

	return &Client{
		service: svc,
	}, nil
}

// Initialize starts the pricing service
func (c *Client) Initialize() error {
	return c.service.Initialize()
}

// LoadMarket replaces the live market snapshot
func (c *Client) LoadMarket(input MarketInput) error {
	return c.service.LoadMarket(input)
}

// PriceBond values a zero coupon bond
func (c *Client) PriceBond(in BondInput, risk *RiskInput) (*PriceResponse, error) {
	return c.service.PriceBond(in, risk)
}

// PriceSwap values a fixed-for-float swap
func (c *Client) PriceSwap(in SwapInput, risk *RiskInput) (*PriceResponse, error) {
	return c.service.PriceSwap(in, risk)
}

// PriceFXForward values an fx forward
func (c *Client) PriceFXForward(in FXForwardInput, risk *RiskInput) (*PriceResponse, error) {
	return c.service.PriceFXForward(in, risk)
}

// PriceMortgage values a level-pay mortgage
func (c *Client) PriceMortgage(in MortgageInput, risk *RiskInput) (*PriceResponse, error) {
	return c.service.PriceMortgage(in, risk)
}

// PriceCDS values a credit default swap
func (c *Client) PriceCDS(in CDSInput, risk *RiskInput) (*PriceResponse, error) {
	return c.service.PriceCDS(in, risk)
}

// CDSFairSpread returns the premium rate that zeroes the CDS NPV
func (c *Client) CDSFairSpread(in CDSInput) (float64, error) {
	return c.service.CDSFairSpread(in)
}

// PublishCurveUpdate pushes a curve tick onto the update stream
func (c *Client) PublishCurveUpdate(update *CurveUpdate) error {
	return c.service.PublishCurveUpdate(update)
}

// Info summarizes the live market
func (c *Client) Info() (*MarketInfo, error) {
	return c.service.Info()
}

// Stop gracefully shuts down the service
func (c *Client) Stop() error {
	c.service.Stop()
	return nil
}

// Service options (re-exported for convenience)
type ServiceOption = service.ServiceOption

// Re-export service options for clean API
var (
	WithRedisConfig        = service.WithRedisConfig
	WithStreamPollInterval = service.WithStreamPollInterval
	WithLogging            = service.WithLogging
)

// Re-export common types for convenience
type (
	MarketInput      = service.MarketInput
	CurveInput       = service.CurveInput
	HazardCurveInput = service.HazardCurveInput
	BondInput        = service.BondInput
	SwapInput        = service.SwapInput
	FXForwardInput   = service.FXForwardInput
	MortgageInput    = service.MortgageInput
	CDSInput         = service.CDSInput
	RiskInput        = service.RiskInput
	PriceResponse    = service.PriceResponse
	RiskResult       = service.RiskResult
	MarketInfo       = service.MarketInfo
	CurveUpdate      = service.CurveUpdate
	MarketSnapshot   = storage.MarketSnapshot
)
