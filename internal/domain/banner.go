package domain

// RewardKind tells whether a rate-up slot holds characters or light cones.
type RewardKind string

const (
	RewardKindCharacter RewardKind = "character"
	RewardKindLightCone RewardKind = "light_cone"
)

func (k RewardKind) String() string {
	return string(k)
}

func (k RewardKind) IsValid() bool {
	switch k {
	case RewardKindCharacter, RewardKindLightCone:
		return true
	default:
		return false
	}
}

type PoolType string

const (
	PoolTypeCharacter PoolType = "character"
	PoolTypeLightCone PoolType = "light_cone"
	PoolTypeUnknown   PoolType = "unknown"
)

func (p PoolType) String() string {
	return string(p)
}

// PoolTypeFor classifies a banner by the kind of its 5-star slot.
func PoolTypeFor(kind RewardKind) PoolType {
	if kind == RewardKindCharacter {
		return PoolTypeCharacter
	}
	return PoolTypeLightCone
}

// BannerRecord is one gacha banner period scraped from the wish wiki.
//
// Start is either a literal "YYYY/M/D H:MM" timestamp, an empty string when
// the source gives only an end time, or a qualifier like "3.4版本更新后" for
// banners that open with a version rollout instead of at a fixed time.
type BannerRecord struct {
	Version         string     `json:"version"`
	PoolType        PoolType   `json:"pool_type"`
	TimeRangeRaw    string     `json:"time_range_raw"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	FiveStarKind    RewardKind `json:"five_star_kind"`
	FiveStarContent string     `json:"five_star_content"`
	FourStarKind    RewardKind `json:"four_star_kind,omitempty"`
	FourStarContent string     `json:"four_star_content"`
}

func (b *BannerRecord) IsCharacterPool() bool {
	if b == nil {
		return false
	}
	return b.PoolType == PoolTypeCharacter
}
