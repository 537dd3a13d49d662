package mailtrap

// Version is the library version reported in the User-Agent header.
const Version = "1.0.0"

// UserAgent is the default User-Agent attached to every request.
const UserAgent = "mailtrap-go/" + Version + " (https://github.com/mailtrap/mailtrap-go)"
