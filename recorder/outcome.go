package recorder

// Kind outcome kind of one record
type Kind int

const (
	// KindSuccess series downloaded and saved
	KindSuccess Kind = iota
	// KindExists cached series already present, nothing downloaded
	KindExists
	// KindEmpty source returned no rows, nothing written
	KindEmpty
	// KindError record failed
	KindError
)

// Kinds all outcome kinds in report order
var Kinds = []Kind{KindSuccess, KindExists, KindEmpty, KindError}

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindExists:
		return "exists"
	case KindEmpty:
		return "empty"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// UnknownErrorMessage message of error outcome without message
const UnknownErrorMessage = "Unknown Error"

// Outcome 单条记录的结果
type Outcome struct {
	Kind    Kind
	Ticker  string
	Message string // only set on KindError
}

func success(ticker string) Outcome {
	return Outcome{Kind: KindSuccess, Ticker: ticker}
}

func exists(ticker string) Outcome {
	return Outcome{Kind: KindExists, Ticker: ticker}
}

func empty(ticker string) Outcome {
	return Outcome{Kind: KindEmpty, Ticker: ticker}
}

func failed(ticker string, err error) Outcome {
	message := UnknownErrorMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	return Outcome{Kind: KindError, Ticker: ticker, Message: message}
}
