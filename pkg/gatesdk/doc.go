// Package gatesdk is a Go client for the download gate service.
//
// The typical browser flow is two calls: obtain a gate token after passing
// the captcha, then present it to read the catalog.
//
//	client := gatesdk.NewClient("https://gate.example.com")
//	issued, err := client.IssueGateToken(ctx, captchaResponse)
//	if err != nil {
//		return err
//	}
//	entries, err := client.GetCatalog(ctx, issued.GateToken)
//
// Download telemetry is public:
//
//	total, err := client.RecordDownload(ctx)
//
// Non-2xx responses are returned as *APIError, which carries the status code
// and the server's error message.
package gatesdk
