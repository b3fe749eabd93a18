package domain

// Channel identifies which marketplace a plan row belongs to. Seller is a
// derived channel for direct-fulfilled sales and never appears in raw input.
type Channel string

const (
	ChannelAmazon   Channel = "Amazon IN"
	ChannelFlipkart Channel = "Flipkart"
	ChannelMyntra   Channel = "Myntra"
	ChannelSeller   Channel = "SELLER"
)

// Marketplaces returns the real sales channels, excluding the synthetic
// seller channel.
func Marketplaces() []Channel {
	return []Channel{ChannelAmazon, ChannelFlipkart, ChannelMyntra}
}

// IsSeller reports whether the channel is the synthetic direct-fulfillment
// channel. This is the single discriminant for seller rows; there is no
// separate boolean flag that could contradict it.
func (c Channel) IsSeller() bool {
	return c == ChannelSeller
}

// ParseChannel resolves a raw channel name to a known Channel.
func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelAmazon, ChannelFlipkart, ChannelMyntra, ChannelSeller:
		return Channel(s), true
	}
	return "", false
}
