package box2d

import (
	"fmt"
	"math"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2BroadPhase.h
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/*
This broad phase uses the Sweep and Prune algorithm as described in:
Collision Detection in Interactive 3D Environments by Gino van den Bergen
Also, some ideas, such as using integral values for fast compares comes from
Bullet (http:/www.bulletphysics.com).

Notes:
- we use bound arrays instead of linked lists for cache coherence.
- we use quantized integral values for fast compares.
- we use pool indices rather than pointers.
- we use a stabbing count for fast overlap queries (less than order N).
- we also use a time stamp on each proxy to speed up the registration of
  overlap query results.
- no broadphase is perfect and neither is this one: it is not great for huge
  worlds (use a multi-SAP instead), it is not great for large objects.
*/

const B2_invalid = math.MaxInt32

type B2Bound struct {
	Value         int
	ProxyId       int
	StabbingCount int
}

// Lower bounds are quantized to even values and upper bounds to odd ones.
func (b B2Bound) IsLower() bool {
	return (b.Value & 1) == 0
}

func (b B2Bound) IsUpper() bool {
	return (b.Value & 1) == 1
}

type B2Proxy struct {
	LowerBounds  [2]int
	UpperBounds  [2]int
	OverlapCount int
	TimeStamp    int
	UserData     interface{}

	next int
}

func (p B2Proxy) GetNext() int {
	return p.next
}

func (p *B2Proxy) SetNext(next int) {
	p.next = next
}

func (p B2Proxy) IsValid() bool {
	return p.OverlapCount != B2_invalid
}

type b2BoundValues struct {
	LowerValues [2]int
	UpperValues [2]int
}

type B2BroadPhase struct {
	M_pairManager B2PairManager

	M_proxyPool []B2Proxy
	m_freeProxy int

	M_bounds [2][]B2Bound

	m_queryResults     []int
	m_queryResultCount int

	M_worldAABB          B2AABB
	M_quantizationFactor B2Vec2
	M_proxyCount         int
	m_timeStamp          int
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2BroadPhase.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// Returns the index of an equal-valued bound, otherwise the insertion index.
func b2BinarySearch(bounds []B2Bound, count int, value int) int {
	low := 0
	high := count - 1
	for low <= high {
		mid := (low + high) >> 1
		if bounds[mid].Value > value {
			high = mid - 1
		} else if bounds[mid].Value < value {
			low = mid + 1
		} else {
			return mid
		}
	}

	return low
}

func NewB2BroadPhase(worldAABB B2AABB, callback B2PairCallback) (*B2BroadPhase, error) {
	return NewB2BroadPhaseWithCapacity(worldAABB, callback, B2_maxProxies, B2_maxPairs)
}

/// Build a broad-phase over a fixed world box. The proxy and pair pools are
/// allocated once here and never grow.
func NewB2BroadPhaseWithCapacity(worldAABB B2AABB, callback B2PairCallback, maxProxies, maxPairs int) (*B2BroadPhase, error) {
	if !worldAABB.IsValid() {
		return nil, fmt.Errorf("%w: world bounds %v", ErrInvalidAABB, worldAABB)
	}

	d := B2Vec2Sub(worldAABB.UpperBound, worldAABB.LowerBound)
	if d.X <= 0.0 || d.Y <= 0.0 {
		return nil, fmt.Errorf("%w: world bounds have no area", ErrInvalidAABB)
	}

	if maxProxies <= 0 || maxPairs <= 0 || maxProxies >= B2_nullProxy {
		return nil, fmt.Errorf("%w: proxies=%d pairs=%d", ErrInvalidConfig, maxProxies, maxPairs)
	}

	bp := &B2BroadPhase{
		M_pairManager:  MakeB2PairManager(maxPairs),
		M_proxyPool:    make([]B2Proxy, maxProxies),
		m_queryResults: make([]int, maxProxies),
		M_worldAABB:    worldAABB,
	}

	bp.M_pairManager.Initialize(bp, callback)

	bp.M_bounds[0] = make([]B2Bound, 2*maxProxies)
	bp.M_bounds[1] = make([]B2Bound, 2*maxProxies)

	bp.M_quantizationFactor.X = float64(math.MaxInt32) / d.X
	bp.M_quantizationFactor.Y = float64(math.MaxInt32) / d.Y

	for i := 0; i < maxProxies-1; i++ {
		bp.M_proxyPool[i].SetNext(i + 1)
		bp.M_proxyPool[i].TimeStamp = 0
		bp.M_proxyPool[i].OverlapCount = B2_invalid
		bp.M_proxyPool[i].UserData = nil
	}

	bp.M_proxyPool[maxProxies-1].SetNext(B2_nullProxy)
	bp.M_proxyPool[maxProxies-1].TimeStamp = 0
	bp.M_proxyPool[maxProxies-1].OverlapCount = B2_invalid
	bp.M_proxyPool[maxProxies-1].UserData = nil

	bp.m_freeProxy = 0
	bp.m_timeStamp = 1
	bp.m_queryResultCount = 0

	return bp, nil
}

/// Use this to see if your proxy is in range. If it is not in range,
/// it should be destroyed. Otherwise you may get O(m^2) pairs, where m
/// is the number of proxies that are out of range.
func (bp B2BroadPhase) InRange(aabb B2AABB) bool {
	d := B2Vec2Max(
		B2Vec2Sub(aabb.LowerBound, bp.M_worldAABB.UpperBound),
		B2Vec2Sub(bp.M_worldAABB.LowerBound, aabb.UpperBound),
	)
	return math.Max(d.X, d.Y) < 0.0
}

/// Get a single proxy. Returns nil if the id is invalid.
func (bp *B2BroadPhase) GetProxy(proxyId int) *B2Proxy {
	if proxyId < 0 || proxyId >= len(bp.M_proxyPool) || !bp.M_proxyPool[proxyId].IsValid() {
		return nil
	}

	return &bp.M_proxyPool[proxyId]
}

func (bp B2BroadPhase) GetProxyCount() int {
	return bp.M_proxyCount
}

func (bp *B2BroadPhase) GetPairCount() int {
	return bp.M_pairManager.GetPairCount()
}

// This one is only used for validation.
func (bp *B2BroadPhase) TestOverlap(p1, p2 *B2Proxy) bool {
	for axis := 0; axis < 2; axis++ {
		bounds := bp.M_bounds[axis]

		B2Assert(p1.LowerBounds[axis] < 2*bp.M_proxyCount)
		B2Assert(p1.UpperBounds[axis] < 2*bp.M_proxyCount)
		B2Assert(p2.LowerBounds[axis] < 2*bp.M_proxyCount)
		B2Assert(p2.UpperBounds[axis] < 2*bp.M_proxyCount)

		if bounds[p1.LowerBounds[axis]].Value > bounds[p2.UpperBounds[axis]].Value {
			return false
		}

		if bounds[p1.UpperBounds[axis]].Value < bounds[p2.LowerBounds[axis]].Value {
			return false
		}
	}

	return true
}

func (bp *B2BroadPhase) testOverlapValues(b *b2BoundValues, p *B2Proxy) bool {
	for axis := 0; axis < 2; axis++ {
		bounds := bp.M_bounds[axis]

		B2Assert(p.LowerBounds[axis] < 2*bp.M_proxyCount)
		B2Assert(p.UpperBounds[axis] < 2*bp.M_proxyCount)

		if b.LowerValues[axis] > bounds[p.UpperBounds[axis]].Value {
			return false
		}

		if b.UpperValues[axis] < bounds[p.LowerBounds[axis]].Value {
			return false
		}
	}

	return true
}

func (bp *B2BroadPhase) computeBounds(lowerValues, upperValues *[2]int, aabb B2AABB) {
	B2Assert(aabb.UpperBound.X >= aabb.LowerBound.X)
	B2Assert(aabb.UpperBound.Y >= aabb.LowerBound.Y)

	minVertex := B2Vec2Max(B2Vec2Min(aabb.LowerBound, bp.M_worldAABB.UpperBound), bp.M_worldAABB.LowerBound)
	maxVertex := B2Vec2Max(B2Vec2Min(aabb.UpperBound, bp.M_worldAABB.UpperBound), bp.M_worldAABB.LowerBound)

	// Bump lower bounds downs and upper bounds up. This ensures correct sorting of
	// lower/upper bounds that would have equal values.
	lowerValues[0] = int(bp.M_quantizationFactor.X*(minVertex.X-bp.M_worldAABB.LowerBound.X)) & (math.MaxInt32 - 1)
	upperValues[0] = int(bp.M_quantizationFactor.X*(maxVertex.X-bp.M_worldAABB.LowerBound.X)) | 1

	lowerValues[1] = int(bp.M_quantizationFactor.Y*(minVertex.Y-bp.M_worldAABB.LowerBound.Y)) & (math.MaxInt32 - 1)
	upperValues[1] = int(bp.M_quantizationFactor.Y*(maxVertex.Y-bp.M_worldAABB.LowerBound.Y)) | 1
}

func (bp *B2BroadPhase) incrementOverlapCount(proxyId int) {
	proxy := &bp.M_proxyPool[proxyId]
	if proxy.TimeStamp < bp.m_timeStamp {
		proxy.TimeStamp = bp.m_timeStamp
		proxy.OverlapCount = 1
	} else {
		proxy.OverlapCount = 2
		B2Assert(bp.m_queryResultCount < len(bp.m_queryResults))
		bp.m_queryResults[bp.m_queryResultCount] = proxyId
		bp.m_queryResultCount++
	}
}

func (bp *B2BroadPhase) incrementTimeStamp() {
	if bp.m_timeStamp == math.MaxInt32 {
		for i := range bp.M_proxyPool {
			bp.M_proxyPool[i].TimeStamp = 0
		}
		bp.m_timeStamp = 1
	} else {
		bp.m_timeStamp++
	}
}

// Stabbing query on one axis. Every proxy hit gets its overlap count bumped for
// the current time stamp; a proxy hit on both axes lands in m_queryResults.
func (bp *B2BroadPhase) query(lowerQueryOut, upperQueryOut *int, lowerValue, upperValue int, bounds []B2Bound, boundCount int, axis int) {
	lowerQuery := b2BinarySearch(bounds, boundCount, lowerValue)
	upperQuery := b2BinarySearch(bounds, boundCount, upperValue)

	// Easy case: lowerQuery <= lowerIndex(i) < upperQuery
	// Solution: search query range for min bounds.
	for i := lowerQuery; i < upperQuery; i++ {
		if bounds[i].IsLower() {
			bp.incrementOverlapCount(bounds[i].ProxyId)
		}
	}

	// Hard case: lowerIndex(i) < lowerQuery < upperIndex(i)
	// Solution: use the stabbing count to search down the bound array.
	if lowerQuery > 0 {
		i := lowerQuery - 1
		s := bounds[i].StabbingCount

		// Find the s overlaps.
		for s != 0 {
			B2Assert(i >= 0)

			if bounds[i].IsLower() {
				proxy := &bp.M_proxyPool[bounds[i].ProxyId]
				if lowerQuery <= proxy.UpperBounds[axis] {
					bp.incrementOverlapCount(bounds[i].ProxyId)
					s--
				}
			}
			i--
		}
	}

	*lowerQueryOut = lowerQuery
	*upperQueryOut = upperQuery
}

/// Create a proxy with an initial AABB. Pairs are not reported until Commit is called.
func (bp *B2BroadPhase) CreateProxy(aabb B2AABB, userData interface{}) (int, error) {
	if !aabb.IsValid() {
		return B2_nullProxy, fmt.Errorf("%w: %v", ErrInvalidAABB, aabb)
	}

	if bp.m_freeProxy == B2_nullProxy {
		return B2_nullProxy, fmt.Errorf("%w: %d proxies in use", ErrProxyCapacity, bp.M_proxyCount)
	}

	B2Assert(bp.M_proxyCount < len(bp.M_proxyPool))

	proxyId := bp.m_freeProxy
	proxy := &bp.M_proxyPool[proxyId]
	bp.m_freeProxy = proxy.GetNext()

	proxy.OverlapCount = 0
	proxy.UserData = userData

	boundCount := 2 * bp.M_proxyCount

	var lowerValues, upperValues [2]int
	bp.computeBounds(&lowerValues, &upperValues, aabb)

	for axis := 0; axis < 2; axis++ {
		bounds := bp.M_bounds[axis]
		var lowerIndex, upperIndex int
		bp.query(&lowerIndex, &upperIndex, lowerValues[axis], upperValues[axis], bounds, boundCount, axis)

		copy(bounds[upperIndex+2:boundCount+2], bounds[upperIndex:boundCount])
		copy(bounds[lowerIndex+1:upperIndex+1], bounds[lowerIndex:upperIndex])

		// The upper index has increased because of the lower bound insertion.
		upperIndex++

		// Copy in the new bounds.
		bounds[lowerIndex].Value = lowerValues[axis]
		bounds[lowerIndex].ProxyId = proxyId
		bounds[upperIndex].Value = upperValues[axis]
		bounds[upperIndex].ProxyId = proxyId

		if lowerIndex == 0 {
			bounds[lowerIndex].StabbingCount = 0
		} else {
			bounds[lowerIndex].StabbingCount = bounds[lowerIndex-1].StabbingCount
		}
		bounds[upperIndex].StabbingCount = bounds[upperIndex-1].StabbingCount

		// Adjust the stabbing count between the new bounds.
		for index := lowerIndex; index < upperIndex; index++ {
			bounds[index].StabbingCount++
		}

		// Adjust the all the affected bound indices.
		for index := lowerIndex; index < boundCount+2; index++ {
			proxyn := &bp.M_proxyPool[bounds[index].ProxyId]
			if bounds[index].IsLower() {
				proxyn.LowerBounds[axis] = index
			} else {
				proxyn.UpperBounds[axis] = index
			}
		}
	}

	bp.M_proxyCount++

	B2Assert(bp.m_queryResultCount < len(bp.M_proxyPool))

	// Create pairs if the AABB is in range.
	for i := 0; i < bp.m_queryResultCount; i++ {
		B2Assert(bp.M_proxyPool[bp.m_queryResults[i]].IsValid())
		bp.M_pairManager.AddBufferedPair(proxyId, bp.m_queryResults[i])
	}

	err := bp.M_pairManager.Commit()

	if B2DEBUG {
		bp.Validate()
	}

	// Prepare for next query.
	bp.m_queryResultCount = 0
	bp.incrementTimeStamp()

	return proxyId, err
}

/// Destroy a proxy. Removed pairs are reported before this returns.
func (bp *B2BroadPhase) DestroyProxy(proxyId int) error {
	proxy := bp.GetProxy(proxyId)
	if proxy == nil {
		return nil
	}

	B2Assert(0 < bp.M_proxyCount && bp.M_proxyCount <= len(bp.M_proxyPool))

	boundCount := 2 * bp.M_proxyCount

	for axis := 0; axis < 2; axis++ {
		bounds := bp.M_bounds[axis]

		lowerIndex := proxy.LowerBounds[axis]
		upperIndex := proxy.UpperBounds[axis]
		lowerValue := bounds[lowerIndex].Value
		upperValue := bounds[upperIndex].Value

		copy(bounds[lowerIndex:upperIndex-1], bounds[lowerIndex+1:upperIndex])
		copy(bounds[upperIndex-1:boundCount-2], bounds[upperIndex+1:boundCount])

		// Fix bound indices.
		for index := lowerIndex; index < boundCount-2; index++ {
			proxyn := &bp.M_proxyPool[bounds[index].ProxyId]
			if bounds[index].IsLower() {
				proxyn.LowerBounds[axis] = index
			} else {
				proxyn.UpperBounds[axis] = index
			}
		}

		// Fix stabbing count.
		for index := lowerIndex; index < upperIndex-1; index++ {
			bounds[index].StabbingCount--
		}

		// Query for pairs to be removed. lowerIndex and upperIndex are not needed.
		var ignoredLower, ignoredUpper int
		bp.query(&ignoredLower, &ignoredUpper, lowerValue, upperValue, bounds, boundCount-2, axis)
	}

	B2Assert(bp.m_queryResultCount < len(bp.M_proxyPool))

	for i := 0; i < bp.m_queryResultCount; i++ {
		B2Assert(bp.M_proxyPool[bp.m_queryResults[i]].IsValid())
		bp.M_pairManager.RemoveBufferedPair(proxyId, bp.m_queryResults[i])
	}

	err := bp.M_pairManager.Commit()

	// Prepare for next query.
	bp.m_queryResultCount = 0
	bp.incrementTimeStamp()

	// Return the proxy to the pool.
	proxy.UserData = nil
	proxy.OverlapCount = B2_invalid
	proxy.LowerBounds = [2]int{B2_invalid, B2_invalid}
	proxy.UpperBounds = [2]int{B2_invalid, B2_invalid}

	proxy.SetNext(bp.m_freeProxy)
	bp.m_freeProxy = proxyId
	bp.M_proxyCount--

	if B2DEBUG {
		bp.Validate()
	}

	return err
}

/// Call MoveProxy as many times as you like, then when you are done
/// call Commit to finalized the proxy pairs (for your time step).
func (bp *B2BroadPhase) MoveProxy(proxyId int, aabb B2AABB) {
	proxy := bp.GetProxy(proxyId)
	if proxy == nil {
		return
	}

	if !aabb.IsValid() {
		b2Logf("MoveProxy: ignoring invalid AABB %v for proxy %d", aabb, proxyId)
		return
	}

	boundCount := 2 * bp.M_proxyCount

	// Get new bound values
	var newValues, oldValues b2BoundValues
	bp.computeBounds(&newValues.LowerValues, &newValues.UpperValues, aabb)

	// Get old bound values
	for axis := 0; axis < 2; axis++ {
		oldValues.LowerValues[axis] = bp.M_bounds[axis][proxy.LowerBounds[axis]].Value
		oldValues.UpperValues[axis] = bp.M_bounds[axis][proxy.UpperBounds[axis]].Value
	}

	for axis := 0; axis < 2; axis++ {
		bounds := bp.M_bounds[axis]

		lowerIndex := proxy.LowerBounds[axis]
		upperIndex := proxy.UpperBounds[axis]

		lowerValue := newValues.LowerValues[axis]
		upperValue := newValues.UpperValues[axis]

		deltaLower := lowerValue - bounds[lowerIndex].Value
		deltaUpper := upperValue - bounds[upperIndex].Value

		bounds[lowerIndex].Value = lowerValue
		bounds[upperIndex].Value = upperValue

		//
		// Expanding adds overlaps
		//

		// Should we move the lower bound down?
		if deltaLower < 0 {
			index := lowerIndex
			for index > 0 && lowerValue < bounds[index-1].Value {
				bound := &bounds[index]
				prevBound := &bounds[index-1]

				prevProxyId := prevBound.ProxyId
				prevProxy := &bp.M_proxyPool[prevBound.ProxyId]

				prevBound.StabbingCount++

				if prevBound.IsUpper() {
					if bp.testOverlapValues(&newValues, prevProxy) {
						bp.M_pairManager.AddBufferedPair(proxyId, prevProxyId)
					}

					prevProxy.UpperBounds[axis]++
					bound.StabbingCount++
				} else {
					prevProxy.LowerBounds[axis]++
					bound.StabbingCount--
				}

				proxy.LowerBounds[axis]--
				*bound, *prevBound = *prevBound, *bound
				index--
			}
		}

		// Should we move the upper bound up?
		if deltaUpper > 0 {
			index := upperIndex
			for index < boundCount-1 && bounds[index+1].Value <= upperValue {
				bound := &bounds[index]
				nextBound := &bounds[index+1]
				nextProxyId := nextBound.ProxyId
				nextProxy := &bp.M_proxyPool[nextProxyId]

				nextBound.StabbingCount++

				if nextBound.IsLower() {
					if bp.testOverlapValues(&newValues, nextProxy) {
						bp.M_pairManager.AddBufferedPair(proxyId, nextProxyId)
					}

					nextProxy.LowerBounds[axis]--
					bound.StabbingCount++
				} else {
					nextProxy.UpperBounds[axis]--
					bound.StabbingCount--
				}

				proxy.UpperBounds[axis]++
				*bound, *nextBound = *nextBound, *bound
				index++
			}
		}

		//
		// Shrinking removes overlaps
		//

		// Should we move the lower bound up?
		if deltaLower > 0 {
			index := lowerIndex
			for index < boundCount-1 && bounds[index+1].Value <= lowerValue {
				bound := &bounds[index]
				nextBound := &bounds[index+1]

				nextProxyId := nextBound.ProxyId
				nextProxy := &bp.M_proxyPool[nextProxyId]

				nextBound.StabbingCount--

				if nextBound.IsUpper() {
					if bp.testOverlapValues(&oldValues, nextProxy) {
						bp.M_pairManager.RemoveBufferedPair(proxyId, nextProxyId)
					}

					nextProxy.UpperBounds[axis]--
					bound.StabbingCount--
				} else {
					nextProxy.LowerBounds[axis]--
					bound.StabbingCount++
				}

				proxy.LowerBounds[axis]++
				*bound, *nextBound = *nextBound, *bound
				index++
			}
		}

		// Should we move the upper bound down?
		if deltaUpper < 0 {
			index := upperIndex
			for index > 0 && upperValue < bounds[index-1].Value {
				bound := &bounds[index]
				prevBound := &bounds[index-1]

				prevProxyId := prevBound.ProxyId
				prevProxy := &bp.M_proxyPool[prevProxyId]

				prevBound.StabbingCount--

				if prevBound.IsLower() {
					if bp.testOverlapValues(&oldValues, prevProxy) {
						bp.M_pairManager.RemoveBufferedPair(proxyId, prevProxyId)
					}

					prevProxy.LowerBounds[axis]++
					bound.StabbingCount--
				} else {
					prevProxy.UpperBounds[axis]++
					bound.StabbingCount++
				}

				proxy.UpperBounds[axis]--
				*bound, *prevBound = *prevBound, *bound
				index--
			}
		}
	}

	if B2DEBUG {
		bp.Validate()
	}
}

/// Report the buffered pair transitions to the callback.
func (bp *B2BroadPhase) Commit() error {
	return bp.M_pairManager.Commit()
}

/// Query an AABB for overlapping proxies, returns the user data of at most
/// maxCount of them.
func (bp *B2BroadPhase) Query(aabb B2AABB, maxCount int) []interface{} {
	var lowerValues, upperValues [2]int
	bp.computeBounds(&lowerValues, &upperValues, aabb)

	var lowerIndex, upperIndex int
	bp.query(&lowerIndex, &upperIndex, lowerValues[0], upperValues[0], bp.M_bounds[0], 2*bp.M_proxyCount, 0)
	bp.query(&lowerIndex, &upperIndex, lowerValues[1], upperValues[1], bp.M_bounds[1], 2*bp.M_proxyCount, 1)

	B2Assert(bp.m_queryResultCount <= len(bp.M_proxyPool))

	count := bp.m_queryResultCount
	if count > maxCount {
		count = maxCount
	}

	results := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		proxy := &bp.M_proxyPool[bp.m_queryResults[i]]
		B2Assert(proxy.IsValid())
		results = append(results, proxy.UserData)
	}

	// Prepare for next query.
	bp.m_queryResultCount = 0
	bp.incrementTimeStamp()

	return results
}

/// Check the sorted bound arrays, their stabbing counts and the proxies'
/// back references. Panics on the first violation.
func (bp *B2BroadPhase) Validate() {
	for axis := 0; axis < 2; axis++ {
		bounds := bp.M_bounds[axis]

		boundCount := 2 * bp.M_proxyCount
		stabbingCount := 0

		for i := 0; i < boundCount; i++ {
			bound := &bounds[i]
			B2Assert(i == 0 || bounds[i-1].Value <= bound.Value)
			B2Assert(bound.ProxyId != B2_nullProxy)
			B2Assert(bp.M_proxyPool[bound.ProxyId].IsValid())

			if bound.IsLower() {
				B2Assert(bp.M_proxyPool[bound.ProxyId].LowerBounds[axis] == i)
				stabbingCount++
			} else {
				B2Assert(bp.M_proxyPool[bound.ProxyId].UpperBounds[axis] == i)
				stabbingCount--
			}

			B2Assert(bound.StabbingCount == stabbingCount)
		}
	}
}
