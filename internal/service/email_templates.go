package service

import "fmt"

func loginCodeEmailTemplate(code, expiry, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s sign-in code: %s", appName, code)
	body := fmt.Sprintf(`Your sign-in code is:

%s

Enter it on the admin login page (%s/admin/login) to continue.

This code expires in %s and can only be used once.

If you didn't request this, ignore this email.

Best,
The %s Team`, code, appURL, expiry, appName)

	return subject, body
}

func contactMessageEmailTemplate(msg ContactMessage, appName string) (string, string) {
	subject := fmt.Sprintf("[%s contact] %s", appName, msg.Subject)
	body := fmt.Sprintf(`New message from the contact form.

Name: %s
Email: %s
Subject: %s

%s`, msg.Name, msg.Email, msg.Subject, msg.Message)

	return subject, body
}
