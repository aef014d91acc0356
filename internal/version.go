package internal

// Version is the spellbee release version
const Version = "0.4.0"
