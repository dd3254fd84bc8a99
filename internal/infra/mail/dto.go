package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type notificationEmailData struct {
	Message string
	Type    string
}
