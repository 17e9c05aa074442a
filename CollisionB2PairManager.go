package box2d

import (
	"fmt"
	"math"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2PairManager.h
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// The pair manager is used by the broad-phase to quickly add/remove/find pairs
// of overlapping proxies. It is based closely on code provided by Pierre Terdiman.
// http://www.codercorner.com/IncrementalSAP.txt

const B2_nullPair = math.MaxInt32
const B2_nullProxy = math.MaxInt32

var B2Pair_Status = struct {
	E_pairBuffered uint8
	E_pairRemoved  uint8
	E_pairFinal    uint8
}{
	E_pairBuffered: 0x0001,
	E_pairRemoved:  0x0002,
	E_pairFinal:    0x0004,
}

/// The broad-phase reports overlap transitions through this interface.
/// PairAdded returns the user data stored on the pair; the same value is
/// handed back to PairRemoved.
type B2PairCallback interface {
	PairAdded(proxyUserData1, proxyUserData2 interface{}) interface{}
	PairRemoved(proxyUserData1, proxyUserData2 interface{}, pairUserData interface{})
}

type B2Pair struct {
	UserData interface{}
	ProxyId1 int
	ProxyId2 int
	Next     int
	Status   uint8
}

func (p *B2Pair) SetBuffered()      { p.Status |= B2Pair_Status.E_pairBuffered }
func (p *B2Pair) ClearBuffered()    { p.Status &= ^B2Pair_Status.E_pairBuffered }
func (p B2Pair) IsBuffered() bool   { return p.Status&B2Pair_Status.E_pairBuffered == B2Pair_Status.E_pairBuffered }
func (p *B2Pair) SetRemoved()       { p.Status |= B2Pair_Status.E_pairRemoved }
func (p *B2Pair) ClearRemoved()     { p.Status &= ^B2Pair_Status.E_pairRemoved }
func (p B2Pair) IsRemoved() bool    { return p.Status&B2Pair_Status.E_pairRemoved == B2Pair_Status.E_pairRemoved }
func (p *B2Pair) SetFinal()         { p.Status |= B2Pair_Status.E_pairFinal }
func (p B2Pair) IsFinal() bool      { return p.Status&B2Pair_Status.E_pairFinal == B2Pair_Status.E_pairFinal }

type B2BufferedPair struct {
	ProxyId1 int
	ProxyId2 int
}

type B2PairManager struct {
	M_broadPhase *B2BroadPhase
	M_callback   B2PairCallback

	M_pairs     []B2Pair
	M_freePair  int
	M_pairCount int

	M_pairBuffer      []B2BufferedPair
	M_pairBufferCount int

	M_hashTable []int
	M_tableMask uint32

	// First pool overflow since the last Commit.
	m_err error
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2PairManager.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// Thomas Wang's hash, see: http://www.concentric.net/~Ttwang/tech/inthash.htm
// This assumes proxyId1 and proxyId2 are 16-bit.
func b2PairHash(proxyId1, proxyId2 int) uint32 {
	key := (uint32(proxyId2) << 16) | uint32(proxyId1)
	key = ^key + (key << 15)
	key = key ^ (key >> 12)
	key = key + (key << 2)
	key = key ^ (key >> 4)
	key = key * 2057
	key = key ^ (key >> 16)
	return key
}

func b2PairEquals(pair B2Pair, proxyId1, proxyId2 int) bool {
	return pair.ProxyId1 == proxyId1 && pair.ProxyId2 == proxyId2
}

func MakeB2PairManager(maxPairs int) B2PairManager {
	B2Assert(maxPairs > 0)

	tableCapacity := int(B2NextPowerOfTwo(uint32(maxPairs - 1)))

	pm := B2PairManager{
		M_pairs:      make([]B2Pair, maxPairs),
		M_pairBuffer: make([]B2BufferedPair, maxPairs),
		M_hashTable:  make([]int, tableCapacity),
		M_tableMask:  uint32(tableCapacity - 1),
	}

	for i := range pm.M_hashTable {
		pm.M_hashTable[i] = B2_nullPair
	}

	for i := range pm.M_pairs {
		pm.M_pairs[i].ProxyId1 = B2_nullProxy
		pm.M_pairs[i].ProxyId2 = B2_nullProxy
		pm.M_pairs[i].Next = i + 1
	}
	pm.M_pairs[maxPairs-1].Next = B2_nullPair

	pm.M_freePair = 0
	return pm
}

func (pm *B2PairManager) Initialize(broadPhase *B2BroadPhase, callback B2PairCallback) {
	pm.M_broadPhase = broadPhase
	pm.M_callback = callback
}

func (pm *B2PairManager) GetPairCount() int {
	return pm.M_pairCount
}

func (pm *B2PairManager) findWithHash(proxyId1, proxyId2 int, hash uint32) *B2Pair {
	index := pm.M_hashTable[hash]

	for index != B2_nullPair && !b2PairEquals(pm.M_pairs[index], proxyId1, proxyId2) {
		index = pm.M_pairs[index].Next
	}

	if index == B2_nullPair {
		return nil
	}

	return &pm.M_pairs[index]
}

func (pm *B2PairManager) Find(proxyId1, proxyId2 int) *B2Pair {
	if proxyId1 > proxyId2 {
		proxyId1, proxyId2 = proxyId2, proxyId1
	}

	hash := b2PairHash(proxyId1, proxyId2) & pm.M_tableMask
	return pm.findWithHash(proxyId1, proxyId2, hash)
}

// Returns existing pair or creates a new one.
func (pm *B2PairManager) addPair(proxyId1, proxyId2 int) (*B2Pair, error) {
	if proxyId1 > proxyId2 {
		proxyId1, proxyId2 = proxyId2, proxyId1
	}

	hash := b2PairHash(proxyId1, proxyId2) & pm.M_tableMask

	if pair := pm.findWithHash(proxyId1, proxyId2, hash); pair != nil {
		return pair, nil
	}

	if pm.M_freePair == B2_nullPair {
		return nil, fmt.Errorf("%w: %d pairs in use", ErrPairCapacity, pm.M_pairCount)
	}

	pairIndex := pm.M_freePair
	pair := &pm.M_pairs[pairIndex]
	pm.M_freePair = pair.Next

	pair.ProxyId1 = proxyId1
	pair.ProxyId2 = proxyId2
	pair.Status = 0
	pair.UserData = nil
	pair.Next = pm.M_hashTable[hash]

	pm.M_hashTable[hash] = pairIndex

	pm.M_pairCount++

	return pair, nil
}

// Removes a pair. The pair must exist.
func (pm *B2PairManager) removePair(proxyId1, proxyId2 int) interface{} {
	B2Assert(pm.M_pairCount > 0)

	if proxyId1 > proxyId2 {
		proxyId1, proxyId2 = proxyId2, proxyId1
	}

	hash := b2PairHash(proxyId1, proxyId2) & pm.M_tableMask

	node := &pm.M_hashTable[hash]
	for *node != B2_nullPair {
		if b2PairEquals(pm.M_pairs[*node], proxyId1, proxyId2) {
			index := *node
			*node = pm.M_pairs[*node].Next

			pair := &pm.M_pairs[index]
			userData := pair.UserData

			// Scrub
			pair.Next = pm.M_freePair
			pair.ProxyId1 = B2_nullProxy
			pair.ProxyId2 = B2_nullProxy
			pair.UserData = nil
			pair.Status = 0

			pm.M_freePair = index
			pm.M_pairCount--
			return userData
		}

		node = &pm.M_pairs[*node].Next
	}

	B2Assert(false)
	return nil
}

// As proxies are created and moved, many pairs are created and destroyed. Even worse, the same
// pair may be added and removed multiple times in a single time step of the physics engine. To reduce
// traffic in the pair manager, we try to avoid destroying pairs in the pair manager until the
// end of the physics step. This is done by buffering all the RemovePair requests. AddPair
// requests are processed immediately because we need the hash table entry for quick lookup.
//
// All user callbacks are delayed until the buffered pairs are confirmed in Commit.

/// Buffer a pair for addition.
/// We may add a pair that is not in the pair manager or pair buffer.
/// We may add a pair that is already in the pair manager and pair buffer.
/// If the added pair is not a new pair, then it must be in the pair buffer (because RemovePair was called).
func (pm *B2PairManager) AddBufferedPair(id1, id2 int) {
	B2Assert(id1 != B2_nullProxy && id2 != B2_nullProxy)

	pair, err := pm.addPair(id1, id2)
	if err != nil {
		if pm.m_err == nil {
			pm.m_err = err
		}
		return
	}

	// If this pair is not in the pair buffer ...
	if !pair.IsBuffered() {
		// This must be a newly added pair.
		B2Assert(!pair.IsFinal())

		// Add it to the pair buffer.
		pair.SetBuffered()
		pm.M_pairBuffer[pm.M_pairBufferCount] = B2BufferedPair{
			ProxyId1: pair.ProxyId1,
			ProxyId2: pair.ProxyId2,
		}
		pm.M_pairBufferCount++

		B2Assert(pm.M_pairBufferCount <= pm.M_pairCount)
	}

	// Confirm this pair for the subsequent call to Commit.
	pair.ClearRemoved()
}

/// Buffer a pair for removal.
func (pm *B2PairManager) RemoveBufferedPair(id1, id2 int) {
	B2Assert(id1 != B2_nullProxy && id2 != B2_nullProxy)

	pair := pm.Find(id1, id2)

	if pair == nil {
		// The pair never existed. This is legal (due to collision filtering).
		return
	}

	// If this pair is not in the pair buffer ...
	if !pair.IsBuffered() {
		// This must be an old pair.
		B2Assert(pair.IsFinal())

		pair.SetBuffered()
		pm.M_pairBuffer[pm.M_pairBufferCount] = B2BufferedPair{
			ProxyId1: pair.ProxyId1,
			ProxyId2: pair.ProxyId2,
		}
		pm.M_pairBufferCount++

		B2Assert(pm.M_pairBufferCount <= pm.M_pairCount)
	}

	pair.SetRemoved()
}

/// Flush the pair buffer, reporting at most one add and one remove per pair.
/// A pool overflow since the previous commit is returned here; the pairs
/// that did not fit were dropped.
func (pm *B2PairManager) Commit() error {
	removeCount := 0

	proxies := pm.M_broadPhase.M_proxyPool

	for i := 0; i < pm.M_pairBufferCount; i++ {
		pair := pm.Find(pm.M_pairBuffer[i].ProxyId1, pm.M_pairBuffer[i].ProxyId2)
		B2Assert(pair.IsBuffered())
		pair.ClearBuffered()

		proxy1 := &proxies[pair.ProxyId1]
		proxy2 := &proxies[pair.ProxyId2]

		B2Assert(proxy1.IsValid())
		B2Assert(proxy2.IsValid())

		if pair.IsRemoved() {
			// It is possible a pair was added then removed before a commit. Therefore,
			// we should be careful not to tell the user the pair was removed when the
			// the user didn't receive a matching add.
			if pair.IsFinal() {
				pm.M_callback.PairRemoved(proxy1.UserData, proxy2.UserData, pair.UserData)
			}

			// Store the ids so we can actually remove the pair below.
			pm.M_pairBuffer[removeCount] = B2BufferedPair{
				ProxyId1: pair.ProxyId1,
				ProxyId2: pair.ProxyId2,
			}
			removeCount++
		} else {
			if B2DEBUG {
				B2Assert(pm.M_broadPhase.TestOverlap(proxy1, proxy2))
			}

			if !pair.IsFinal() {
				pair.UserData = pm.M_callback.PairAdded(proxy1.UserData, proxy2.UserData)
				pair.SetFinal()
			}
		}
	}

	for i := 0; i < removeCount; i++ {
		pm.removePair(pm.M_pairBuffer[i].ProxyId1, pm.M_pairBuffer[i].ProxyId2)
	}

	pm.M_pairBufferCount = 0

	if B2DEBUG {
		pm.ValidateTable()
	}

	err := pm.m_err
	pm.m_err = nil
	return err
}

/// Every pair in the table must be final, unbuffered and overlapping.
/// Only meaningful right after Commit.
func (pm *B2PairManager) ValidateTable() {
	for i := range pm.M_hashTable {
		index := pm.M_hashTable[i]
		for index != B2_nullPair {
			pair := &pm.M_pairs[index]
			B2Assert(!pair.IsBuffered())
			B2Assert(pair.IsFinal())
			B2Assert(!pair.IsRemoved())

			B2Assert(pair.ProxyId1 != pair.ProxyId2)
			B2Assert(pair.ProxyId1 < len(pm.M_broadPhase.M_proxyPool))
			B2Assert(pair.ProxyId2 < len(pm.M_broadPhase.M_proxyPool))

			proxy1 := &pm.M_broadPhase.M_proxyPool[pair.ProxyId1]
			proxy2 := &pm.M_broadPhase.M_proxyPool[pair.ProxyId2]

			B2Assert(proxy1.IsValid())
			B2Assert(proxy2.IsValid())

			B2Assert(pm.M_broadPhase.TestOverlap(proxy1, proxy2))

			index = pair.Next
		}
	}
}
