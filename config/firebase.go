package config

// FirebaseEnabled reports whether push notifications can be sent.
func FirebaseEnabled() bool {
	return AppConfig.FirebaseCredentialsFile != ""
}
