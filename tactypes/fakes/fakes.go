// Package fakes provides hand-rolled test doubles for the tactypes
// collaborator interfaces.
package fakes

import (
	"sync"

	"github.com/tacware/travelagent/tactypes"
)

type FakeHoldingsClient struct {
	lock  sync.Mutex
	owned map[int]int
}

func NewFakeHoldingsClient() *FakeHoldingsClient {
	return &FakeHoldingsClient{owned: map[int]int{}}
}

func (f *FakeHoldingsClient) Owned(auction int) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.owned[auction]
}

func (f *FakeHoldingsClient) SetOwned(auction int, quantity int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.owned[auction] = quantity
}

type FakeBidSubmitter struct {
	lock sync.Mutex
	bids []tactypes.Bid

	SubmitError error
}

func NewFakeBidSubmitter() *FakeBidSubmitter {
	return &FakeBidSubmitter{}
}

func (f *FakeBidSubmitter) SubmitBid(bid tactypes.Bid) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.SubmitError != nil {
		return f.SubmitError
	}
	f.bids = append(f.bids, bid)
	return nil
}

func (f *FakeBidSubmitter) Bids() []tactypes.Bid {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]tactypes.Bid{}, f.bids...)
}

func (f *FakeBidSubmitter) LastBid() (tactypes.Bid, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.bids) == 0 {
		return tactypes.Bid{}, false
	}
	return f.bids[len(f.bids)-1], true
}

func (f *FakeBidSubmitter) Reset() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.bids = nil
}
