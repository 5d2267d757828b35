package cli

// asciiLogo is printed by the root help and by version output.
const asciiLogo = `              _        _           _       _     _
   __ _ _   _| |_ ___ (_)_ __  ___(_) __ _| |__ | |_
  / _` + "`" + ` | | | | __/ _ \| | '_ \/ __| |/ _` + "`" + ` | '_ \| __|
 | (_| | |_| | || (_) | | | | \__ \ | (_| | | | | |_
  \__,_|\__,_|\__\___/|_|_| |_|___/_|\__, |_| |_|\__|
                                     |___/`
