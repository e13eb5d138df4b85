package language

// Language is a transcription language supported by Whisper
type Language struct {
	Code string // ISO 639-1 code (e.g., "en", "es", "zh")
	Name string // English name (e.g., "English", "Spanish")
}

// languages is the master list, derived from OpenAI Whisper's supported set
var languages = []Language{
	{Code: "af", Name: "Afrikaans"},
	{Code: "ar", Name: "Arabic"},
	{Code: "hy", Name: "Armenian"},
	{Code: "az", Name: "Azerbaijani"},
	{Code: "be", Name: "Belarusian"},
	{Code: "bs", Name: "Bosnian"},
	{Code: "bg", Name: "Bulgarian"},
	{Code: "ca", Name: "Catalan"},
	{Code: "zh", Name: "Chinese"},
	{Code: "hr", Name: "Croatian"},
	{Code: "cs", Name: "Czech"},
	{Code: "da", Name: "Danish"},
	{Code: "nl", Name: "Dutch"},
	{Code: "en", Name: "English"},
	{Code: "et", Name: "Estonian"},
	{Code: "fi", Name: "Finnish"},
	{Code: "fr", Name: "French"},
	{Code: "gl", Name: "Galician"},
	{Code: "de", Name: "German"},
	{Code: "el", Name: "Greek"},
	{Code: "he", Name: "Hebrew"},
	{Code: "hi", Name: "Hindi"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "is", Name: "Icelandic"},
	{Code: "id", Name: "Indonesian"},
	{Code: "it", Name: "Italian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "kn", Name: "Kannada"},
	{Code: "kk", Name: "Kazakh"},
	{Code: "ko", Name: "Korean"},
	{Code: "lv", Name: "Latvian"},
	{Code: "lt", Name: "Lithuanian"},
	{Code: "mk", Name: "Macedonian"},
	{Code: "ms", Name: "Malay"},
	{Code: "mr", Name: "Marathi"},
	{Code: "mi", Name: "Maori"},
	{Code: "ne", Name: "Nepali"},
	{Code: "no", Name: "Norwegian"},
	{Code: "fa", Name: "Persian"},
	{Code: "pl", Name: "Polish"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ro", Name: "Romanian"},
	{Code: "ru", Name: "Russian"},
	{Code: "sr", Name: "Serbian"},
	{Code: "sk", Name: "Slovak"},
	{Code: "sl", Name: "Slovenian"},
	{Code: "es", Name: "Spanish"},
	{Code: "sw", Name: "Swahili"},
	{Code: "sv", Name: "Swedish"},
	{Code: "tl", Name: "Tagalog"},
	{Code: "ta", Name: "Tamil"},
	{Code: "th", Name: "Thai"},
	{Code: "tr", Name: "Turkish"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "ur", Name: "Urdu"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "cy", Name: "Welsh"},
}

var codeIndex = func() map[string]Language {
	m := make(map[string]Language, len(languages)+1)
	m[""] = Language{Name: "Auto-detect"} // empty code means auto-detect
	for _, lang := range languages {
		m[lang.Code] = lang
	}
	return m
}()

// List returns all supported languages (excluding auto-detect)
func List() []Language {
	result := make([]Language, len(languages))
	copy(result, languages)
	return result
}

// IsValidCode returns true if the code is recognized (including empty for auto)
func IsValidCode(code string) bool {
	_, ok := codeIndex[code]
	return ok
}
