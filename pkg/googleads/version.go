package googleads

// Version is the gads-extractor release.
const Version = "0.3.0"

// UserAgent is sent with every API request.
const UserAgent = "gads-extractor/" + Version
