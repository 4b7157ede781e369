// Package share declares a small protocol for loader tests.
package share

import "time"

// IPolymorphsimObject marks polymorphic extension points.
type IPolymorphsimObject interface {
	polymorphic()
}

const (
	CPtcLogin_ID   = 101
	CPtcLogin_Name = "PtcLogin"
)

type CPtcLogin struct{}

type CPtcLogin_CArg struct {
	ProtocolID uint16
	Account    string
	Items      CPList[CItem]
	Tags       []string
}

type CPtcLogin_CRet struct {
	Buffs CPDictionary[int32, CPolymorphsim[CBuff]]
}

type CItem struct {
	ItemID  int32
	Count   CPropertyBasicTypeModule[int32]
	Quality EQuality
	Next    *CItem
	Weight  Kilograms

	secret int
}

type EQuality int16

const (
	EQualityCommon EQuality = 1
	EQualityRare   EQuality = 2
	EQuality_Junk  EQuality = -1
)

// Kilograms is transparent: fields of this type are plain doubles.
type Kilograms float64

type CBuff struct {
	Duration float32
}

func (CBuff) polymorphic() {}

type CBuffFire struct {
	CBuff
	Damage int32
}

type CPList[T any] struct {
	items []T
}

type CPDictionary[K comparable, V any] struct {
	entries map[K]V
}

type CPolymorphsim[T IPolymorphsimObject] struct {
	value T
}

type CPropertyBasicTypeModule[T any] struct {
	value T
}

const CRpcHeartbeat_ID uint16 = 0x0102

type CRpcHeartbeat struct {
	At      time.Time
	Timeout time.Duration
	Extra   map[string]any
	Notify  chan int
}
