package main

// hostOfSessionKey stores the join code of the game this browser session
// hosts.
const hostOfSessionKey = "hostOf"
