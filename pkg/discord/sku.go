package discord

import "github.com/disgoorg/snowflake/v2"

// SkuType is the kind of premium offering an SKU represents.
type SkuType int

const (
	SkuTypeUnknown           SkuType = -1
	SkuTypeDurable           SkuType = 2
	SkuTypeConsumable        SkuType = 3
	SkuTypeSubscription      SkuType = 5
	SkuTypeSubscriptionGroup SkuType = 6
)

var skuTypeNames = map[SkuType]string{
	SkuTypeUnknown:           "UNKNOWN",
	SkuTypeDurable:           "DURABLE",
	SkuTypeConsumable:        "CONSUMABLE",
	SkuTypeSubscription:      "SUBSCRIPTION",
	SkuTypeSubscriptionGroup: "SUBSCRIPTION_GROUP",
}

func SkuTypeFromKey(key int) SkuType {
	if t := SkuType(key); isKnown(skuTypeNames, t) {
		return t
	}
	return SkuTypeUnknown
}

func (t SkuType) Key() int       { return int(t) }
func (t SkuType) String() string { return nameOf(skuTypeNames, t) }

func (t *SkuType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, SkuTypeFromKey)
	return
}

// SkuFlags is the bitset of SKU availability flags.
type SkuFlags int

const (
	SkuFlagAvailable         SkuFlags = 1 << 2
	SkuFlagGuildSubscription SkuFlags = 1 << 7
	SkuFlagUserSubscription  SkuFlags = 1 << 8
)

// Has reports whether every flag in other is set.
func (f SkuFlags) Has(other SkuFlags) bool { return f&other == other }

// Sku is a purchasable item of an application.
type Sku struct {
	ID            snowflake.ID `json:"id"`
	Type          SkuType      `json:"type"`
	ApplicationID snowflake.ID `json:"application_id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Flags         SkuFlags     `json:"flags"`
}

// IsAvailable reports whether the SKU can currently be purchased.
func (s Sku) IsAvailable() bool { return s.Flags.Has(SkuFlagAvailable) }
