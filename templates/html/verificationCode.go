package templates

import (
	"fmt"
	"html"
	"time"
)

// RenderVerificationCode generates branded HTML for the contact reveal code email
func RenderVerificationCode(code, organisation string, ttl time.Duration) string {
	safeOrg := html.EscapeString(organisation)
	minutes := int(ttl.Minutes())
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Your LegalBridge India verification code</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f5f7fa; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #1e3a8a 0%%, #3182ce 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #2d3748; line-height: 1.6; font-size: 15px; }
    .code { font-size: 32px; letter-spacing: 8px; font-weight: 700; color: #1e3a8a; text-align: center; margin: 30px 0; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>LegalBridge India</h1>
    </div>
    <div class="content">
      <p>Use the code below to view the contact details of <b>%s</b>.</p>
      <div class="code">%s</div>
      <p>This code expires in %d minutes. If you did not request it you can ignore this email.</p>
    </div>
    <div class="footer">
      <p>&copy; LegalBridge India | Free AI-Powered Legal Aid Platform</p>
    </div>
  </div>
</body>
</html>`, safeOrg, html.EscapeString(code), minutes)
}

// VerificationCodeText is the plain text body of the code email and the SMS
func VerificationCodeText(code, organisation string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("LegalBridge India: your code to view %s is %s. It expires in %d minutes.", organisation, code, minutes)
}
