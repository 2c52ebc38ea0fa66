package seed

// Company is the static catalog metadata for one listed stock
type Company struct {
	Symbol      string
	CompanyName string
	Sector      string
	Icon        string
}

// Companies is the default catalog
var Companies = []Company{
	{Symbol: "AAPL", CompanyName: "Apple Inc.", Sector: "Technology", Icon: "apple"},
	{Symbol: "MSFT", CompanyName: "Microsoft Corporation", Sector: "Technology", Icon: "microsoft"},
	{Symbol: "GOOGL", CompanyName: "Alphabet Inc.", Sector: "Technology", Icon: "google"},
	{Symbol: "META", CompanyName: "Meta Platforms Inc.", Sector: "Technology", Icon: "meta"},
	{Symbol: "NVDA", CompanyName: "NVIDIA Corporation", Sector: "Technology", Icon: "nvidia"},
	{Symbol: "ORCL", CompanyName: "Oracle Corporation", Sector: "Technology", Icon: "oracle"},
	{Symbol: "IBM", CompanyName: "IBM Corporation", Sector: "Technology", Icon: "ibm"},
	{Symbol: "INTC", CompanyName: "Intel Corporation", Sector: "Technology", Icon: "intel"},
	{Symbol: "ADBE", CompanyName: "Adobe Inc.", Sector: "Technology", Icon: "adobe"},
	{Symbol: "SAP", CompanyName: "SAP SE", Sector: "Technology", Icon: "sap"},
	{Symbol: "CRM", CompanyName: "Salesforce Inc.", Sector: "Technology", Icon: "salesforce"},
	{Symbol: "CSCO", CompanyName: "Cisco Systems Inc.", Sector: "Technology", Icon: "cisco"},
	{Symbol: "AMD", CompanyName: "Advanced Micro Devices", Sector: "Technology", Icon: "amd"},
	{Symbol: "QCOM", CompanyName: "Qualcomm Inc.", Sector: "Technology", Icon: "qualcomm"},
	{Symbol: "HPQ", CompanyName: "HP Inc.", Sector: "Technology", Icon: "hp"},
	{Symbol: "DELL", CompanyName: "Dell Technologies", Sector: "Technology", Icon: "dell"},
	{Symbol: "ASML", CompanyName: "ASML Holding", Sector: "Technology", Icon: "asml"},
	{Symbol: "TSM", CompanyName: "Taiwan Semiconductor", Sector: "Technology", Icon: "tsmc"},
	{Symbol: "SONY", CompanyName: "Sony Group Corporation", Sector: "Technology", Icon: "sony"},
	{Symbol: "PANW", CompanyName: "Palo Alto Networks", Sector: "Technology", Icon: "paloaltonetworks"},
	{Symbol: "AMZN", CompanyName: "Amazon.com Inc.", Sector: "E-Commerce", Icon: "amazon"},
	{Symbol: "SHOP", CompanyName: "Shopify Inc.", Sector: "E-Commerce", Icon: "shopify"},
	{Symbol: "EBAY", CompanyName: "eBay Inc.", Sector: "E-Commerce", Icon: "ebay"},
	{Symbol: "BABA", CompanyName: "Alibaba Group", Sector: "E-Commerce", Icon: "alibaba"},
	{Symbol: "JD", CompanyName: "JD.com Inc.", Sector: "E-Commerce", Icon: "jdcom"},
	{Symbol: "ETSY", CompanyName: "Etsy Inc.", Sector: "E-Commerce", Icon: "etsy"},
	{Symbol: "W", CompanyName: "Wayfair Inc.", Sector: "E-Commerce", Icon: "wayfair"},
	{Symbol: "ZM", CompanyName: "Zoom Video Communications", Sector: "Internet", Icon: "zoom"},
	{Symbol: "DOCU", CompanyName: "DocuSign Inc.", Sector: "Internet", Icon: "docusign"},
	{Symbol: "TWLO", CompanyName: "Twilio Inc.", Sector: "Internet", Icon: "twilio"},
	{Symbol: "OKTA", CompanyName: "Okta Inc.", Sector: "Internet", Icon: "okta"},
	{Symbol: "SNOW", CompanyName: "Snowflake Inc.", Sector: "Internet", Icon: "snowflake"},
	{Symbol: "ATLS", CompanyName: "Atlassian Corporation", Sector: "Internet", Icon: "atlassian"},
	{Symbol: "GIT", CompanyName: "GitHub Inc.", Sector: "Internet", Icon: "github"},
	{Symbol: "FIVN", CompanyName: "Five9 Inc.", Sector: "Internet", Icon: "five9"},
	{Symbol: "V", CompanyName: "Visa Inc.", Sector: "Fintech", Icon: "visa"},
	{Symbol: "MA", CompanyName: "Mastercard Inc.", Sector: "Fintech", Icon: "mastercard"},
	{Symbol: "PYPL", CompanyName: "PayPal Holdings", Sector: "Fintech", Icon: "paypal"},
	{Symbol: "SQ", CompanyName: "Block Inc.", Sector: "Fintech", Icon: "block"},
	{Symbol: "COIN", CompanyName: "Coinbase Global", Sector: "Fintech", Icon: "coinbase"},
	{Symbol: "ADYEN", CompanyName: "Adyen NV", Sector: "Fintech", Icon: "adyen"},
	{Symbol: "FIS", CompanyName: "Fidelity National Info", Sector: "Fintech", Icon: "fis"},
	{Symbol: "INTU", CompanyName: "Intuit Inc.", Sector: "Fintech", Icon: "intuit"},
	{Symbol: "AFRM", CompanyName: "Affirm Holdings", Sector: "Fintech", Icon: "affirm"},
	{Symbol: "SOFI", CompanyName: "SoFi Technologies", Sector: "Fintech", Icon: "sofi"},
	{Symbol: "WISE", CompanyName: "Wise Plc", Sector: "Fintech", Icon: "wise"},
	{Symbol: "PAY", CompanyName: "Payoneer", Sector: "Fintech", Icon: "payoneer"},
	{Symbol: "STNE", CompanyName: "StoneCo", Sector: "Fintech", Icon: "stone"},
	{Symbol: "NU", CompanyName: "Nubank", Sector: "Fintech", Icon: "nubank"},
	{Symbol: "UPST", CompanyName: "Upstart Holdings", Sector: "Fintech", Icon: "upstart"},
	{Symbol: "JPM", CompanyName: "JPMorgan Chase", Sector: "Banking", Icon: "jpmorgan"},
	{Symbol: "BAC", CompanyName: "Bank of America", Sector: "Banking", Icon: "bankofamerica"},
	{Symbol: "WFC", CompanyName: "Wells Fargo", Sector: "Banking", Icon: "wellsfargo"},
	{Symbol: "GS", CompanyName: "Goldman Sachs", Sector: "Banking", Icon: "goldmansachs"},
	{Symbol: "MS", CompanyName: "Morgan Stanley", Sector: "Banking", Icon: "morganstanley"},
	{Symbol: "C", CompanyName: "Citigroup Inc.", Sector: "Banking", Icon: "citigroup"},
	{Symbol: "HSBC", CompanyName: "HSBC Holdings", Sector: "Banking", Icon: "hsbc"},
	{Symbol: "DB", CompanyName: "Deutsche Bank", Sector: "Banking", Icon: "deutschebank"},
	{Symbol: "UBS", CompanyName: "UBS Group AG", Sector: "Banking", Icon: "ubs"},
	{Symbol: "BARC", CompanyName: "Barclays PLC", Sector: "Banking", Icon: "barclays"},
	{Symbol: "NFLX", CompanyName: "Netflix Inc.", Sector: "Entertainment", Icon: "netflix"},
	{Symbol: "DIS", CompanyName: "Walt Disney Co.", Sector: "Entertainment", Icon: "disney"},
	{Symbol: "SPOT", CompanyName: "Spotify Technology", Sector: "Entertainment", Icon: "spotify"},
	{Symbol: "WBD", CompanyName: "Warner Bros Discovery", Sector: "Entertainment", Icon: "warnerbros"},
	{Symbol: "ROKU", CompanyName: "Roku Inc.", Sector: "Entertainment", Icon: "roku"},
	{Symbol: "TTWO", CompanyName: "Take-Two Interactive", Sector: "Entertainment", Icon: "take-twointeractive"},
	{Symbol: "EA", CompanyName: "Electronic Arts", Sector: "Entertainment", Icon: "ea"},
	{Symbol: "U", CompanyName: "Unity Software", Sector: "Entertainment", Icon: "unity"},
	{Symbol: "SONO", CompanyName: "Sonos Inc.", Sector: "Entertainment", Icon: "sonos"},
	{Symbol: "BILI", CompanyName: "Bilibili Inc.", Sector: "Entertainment", Icon: "bilibili"},
	{Symbol: "TSLA", CompanyName: "Tesla Inc.", Sector: "Automotive", Icon: "tesla"},
	{Symbol: "F", CompanyName: "Ford Motor Company", Sector: "Automotive", Icon: "ford"},
	{Symbol: "GM", CompanyName: "General Motors", Sector: "Automotive", Icon: "generalmotors"},
	{Symbol: "BMW", CompanyName: "BMW Group", Sector: "Automotive", Icon: "bmw"},
	{Symbol: "MBG", CompanyName: "Mercedes-Benz Group", Sector: "Automotive", Icon: "mercedesbenz"},
	{Symbol: "RIVN", CompanyName: "Rivian Automotive", Sector: "Automotive", Icon: "rivian"},
	{Symbol: "XOM", CompanyName: "Exxon Mobil", Sector: "Energy", Icon: "exxonmobil"},
	{Symbol: "CVX", CompanyName: "Chevron Corporation", Sector: "Energy", Icon: "chevron"},
	{Symbol: "BP", CompanyName: "BP plc", Sector: "Energy", Icon: "bp"},
	{Symbol: "SHEL", CompanyName: "Shell plc", Sector: "Energy", Icon: "shell"},
	{Symbol: "TOT", CompanyName: "TotalEnergies", Sector: "Energy", Icon: "totalenergies"},
	{Symbol: "NEE", CompanyName: "NextEra Energy", Sector: "Energy", Icon: "nexteraenergy"},
	{Symbol: "PLUG", CompanyName: "Plug Power", Sector: "Energy", Icon: "plug"},
	{Symbol: "ENPH", CompanyName: "Enphase Energy", Sector: "Energy", Icon: "enphase"},
	{Symbol: "SEDG", CompanyName: "SolarEdge", Sector: "Energy", Icon: "solaredge"},
	{Symbol: "WMT", CompanyName: "Walmart Inc.", Sector: "Retail", Icon: "walmart"},
	{Symbol: "COST", CompanyName: "Costco Wholesale", Sector: "Retail", Icon: "costco"},
	{Symbol: "TGT", CompanyName: "Target Corporation", Sector: "Retail", Icon: "target"},
	{Symbol: "HD", CompanyName: "Home Depot", Sector: "Retail", Icon: "homedepot"},
	{Symbol: "LOW", CompanyName: "Lowe's Companies", Sector: "Retail", Icon: "lowes"},
	{Symbol: "NKE", CompanyName: "Nike Inc.", Sector: "Retail", Icon: "nike"},
	{Symbol: "MCD", CompanyName: "McDonald's Corporation", Sector: "Retail", Icon: "mcdonalds"},
	{Symbol: "SBUX", CompanyName: "Starbucks Corporation", Sector: "Retail", Icon: "starbucks"},
	{Symbol: "ABNB", CompanyName: "Airbnb Inc.", Sector: "Hospitality", Icon: "airbnb"},
	{Symbol: "BKNG", CompanyName: "Booking Holdings", Sector: "Hospitality", Icon: "bookingdotcom"},
}
