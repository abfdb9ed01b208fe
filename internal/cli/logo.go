package cli

const Logo = "           _ _           _ _ \n" +
	" _ __ ___ | | | ___ __ _| | |\n" +
	"| '__/ _ \\| | |/ __/ _` | | |\n" +
	"| | | (_) | | | (_| (_| | | |\n" +
	"|_|  \\___/|_|_|\\___\\__,_|_|_|\n"
