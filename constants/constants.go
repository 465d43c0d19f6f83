package constants

import "time"

const (
	// DefaultParallel define default download parallel
	DefaultParallel = 4
	// DefaultListParallel define concurrent registry segment requests
	DefaultListParallel = 4
	// DefaultLookback define yahoo chart range of each download
	DefaultLookback = "2y"
	// DefaultListTimeout define registry page request timeout
	DefaultListTimeout = time.Second * 15
	// DefaultFetchTimeout define price history request timeout
	DefaultFetchTimeout = time.Second * 10
	// DefaultMinCacheSize cache files not larger than this are downloaded again
	DefaultMinCacheSize = 1000
	// DefaultErrorSampleLength error messages are bucketed by this many leading runes
	DefaultErrorSampleLength = 50
	// DefaultTopN define ranked links count in report
	DefaultTopN = 50
	// DefaultRankColumn define report ranking column
	DefaultRankColumn = "Week_High"
	// DatePattern define date pattern
	DatePattern = "2006-01-02"
	// DateTimePattern define cache file date column pattern
	DateTimePattern = "2006-01-02 15:04:05-07:00"
	// RecordSeparator separate ticker and name in universe record
	RecordSeparator = "&"
	// CacheFileExt define cache file extension
	CacheFileExt = ".csv"
	// TaipeiLocation define taiwan exchange timezone
	TaipeiLocation = "Asia/Taipei"
)
