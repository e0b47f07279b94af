// Package curve estimates token prices on a launchpad bonding curve from a
// table of empirically sampled (supply, price) points.
//
// The estimator interpolates linearly between the two sample points that
// bracket the requested supply and clamps to the boundary prices outside the
// sampled domain.
//
// Key Types and Functions:
//
//   - Point: one observed sample of the curve.
//   - Table: immutable, ascending, duplicate-free set of points (NewTable).
//   - Estimator: EstimatePrice, Segment and Sweep over a Table.
//   - DefaultTable(): the canonical sample table observed on the launchpad.
//
// Usage example:
//
//	est := curve.NewDefaultEstimator()
//	price, err := est.EstimatePrice(150000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Note: the canonical table is not monotonic in price between supply
// 1,000,000 and 5,000,000. The data is reproduced as observed.
package curve
