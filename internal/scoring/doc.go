// Package scoring implements evaluation metrics for vanishing point and
// horizon detection against dataset ground truth.
//
// The metrics follow the common benchmark conventions: horizon error is the
// larger endpoint offset across the image width normalized by image height,
// direction error matches detections to ground truth greedily by angular
// distance from the principal point, and location error averages log
// distances over greedy nearest matches. Missed or extra detections never
// inflate the location score; the model count metric reports them instead.
package scoring
