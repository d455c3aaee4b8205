package models

// SyncAccount is one marketplace connection: credentials plus the sales
// channel whose prices this connection publishes.
type SyncAccount struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	ShopDomain  string            `json:"shop_domain"`
	AccessToken string            `json:"-"`
	ChannelCode string            `json:"channel_code"`
	Settings    map[string]string `json:"settings,omitempty"`
}
