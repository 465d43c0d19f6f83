package exchanges

const isinURL = "https://isin.twse.com.tw/isin/class_main.jsp?owncode=&stockname=&isincode=&market=%s&issuetype=%s&industry_code=&Page=1&chklike=Y"

func init() {
	Register(newSegment("listed", "1", "1", ".TW"))
	Register(newSegment("dr", "1", "J", ".TW"))
	Register(newSegment("otc", "2", "4", ".TWO"))
	Register(newSegment("etf", "1", "I", ".TW"))
	Register(newSegment("rotc", "E", "R", ".TWO"))
	Register(newSegment("tw_innovation", "C", "C", ".TW"))
	Register(newSegment("otc_innovation", "A", "C", ".TWO"))
}
