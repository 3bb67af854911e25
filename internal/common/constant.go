package common

// DefaultAccessTokenHeader is the default request header carrying the access
// token. The server can be configured to read a different header name.
const DefaultAccessTokenHeader = "X-Access-Token"
