package lang

// Central message catalog. Every user-facing string the API localizes lives
// here, keyed once, instead of per-handler dictionaries that drift apart.
// Languages the detector knows but the catalog does not fall back to English.

var catalog = map[string]map[string]string{
	"emergency_response": {
		"en": "This sounds like a medical emergency. Please call 108 immediately or go to the nearest hospital. Do not wait for online advice.",
		"hi": "यह एक मेडिकल इमरजेंसी लगती है। कृपया तुरंत 108 पर कॉल करें या नज़दीकी अस्पताल जाएँ। ऑनलाइन सलाह का इंतज़ार न करें।",
		"bn": "এটি একটি জরুরি চিকিৎসা পরিস্থিতি বলে মনে হচ্ছে। অনুগ্রহ করে এখনই ১০৮ নম্বরে কল করুন বা নিকটস্থ হাসপাতালে যান।",
		"ta": "இது ஒரு மருத்துவ அவசரநிலை போல் தெரிகிறது. உடனடியாக 108 ஐ அழைக்கவும் அல்லது அருகிலுள்ள மருத்துவமனைக்குச் செல்லவும்.",
		"ml": "ഇത് ഒരു മെഡിക്കൽ അടിയന്തരാവസ്ഥയായി തോന്നുന്നു. ഉടൻ 108 വിളിക്കുക അല്ലെങ്കിൽ അടുത്തുള്ള ആശുപത്രിയിൽ പോകുക.",
	},
	"chat_unavailable": {
		"en": "Sorry, I could not process that right now. Please try again, or consult a health professional if this is urgent.",
		"hi": "क्षमा करें, मैं अभी इसका उत्तर नहीं दे सका। कृपया फिर से प्रयास करें, या तुरंत आवश्यकता हो तो स्वास्थ्य विशेषज्ञ से संपर्क करें।",
		"bn": "দুঃখিত, এই মুহূর্তে উত্তর দেওয়া সম্ভব হয়নি। আবার চেষ্টা করুন, জরুরি হলে চিকিৎসকের সাথে যোগাযোগ করুন।",
		"ta": "மன்னிக்கவும், இப்போது பதிலளிக்க முடியவில்லை. மீண்டும் முயற்சிக்கவும்; அவசரமெனில் மருத்துவரை அணுகவும்.",
		"ml": "ക്ഷമിക്കണം, ഇപ്പോൾ മറുപടി നൽകാൻ കഴിഞ്ഞില്ല. വീണ്ടും ശ്രമിക്കുക; അടിയന്തരമെങ്കിൽ ഡോക്ടറെ സമീപിക്കുക.",
	},
	"chat_blocked": {
		"en": "I cannot answer that safely. Please speak to a qualified health professional.",
		"hi": "मैं इसका सुरक्षित उत्तर नहीं दे सकता। कृपया किसी योग्य स्वास्थ्य विशेषज्ञ से बात करें।",
		"bn": "আমি নিরাপদে এর উত্তর দিতে পারছি না। অনুগ্রহ করে একজন যোগ্য চিকিৎসকের সাথে কথা বলুন।",
		"ta": "இதற்கு பாதுகாப்பாக பதிலளிக்க இயலாது. தகுதியான மருத்துவரிடம் பேசவும்.",
		"ml": "ഇതിന് സുരക്ഷിതമായി മറുപടി നൽകാനാവില്ല. യോഗ്യതയുള്ള ഡോക്ടറോട് സംസാരിക്കുക.",
	},
	"risk_low": {
		"en": "Your current risk appears low. Keep up routine checkups and stay hydrated during work.",
		"hi": "आपका जोखिम कम प्रतीत होता है। नियमित जांच कराते रहें और काम के दौरान पानी पीते रहें।",
		"bn": "আপনার ঝুঁকি কম বলে মনে হচ্ছে। নিয়মিত স্বাস্থ্য পরীক্ষা চালিয়ে যান।",
		"ta": "உங்கள் ஆபத்து குறைவாகத் தெரிகிறது. வழக்கமான பரிசோதனைகளைத் தொடரவும்.",
		"ml": "നിങ്ങളുടെ അപകടസാധ്യത കുറവാണ്. പതിവ് പരിശോധനകൾ തുടരുക.",
	},
	"risk_moderate": {
		"en": "Your risk is moderate. Please visit a nearby health center for a checkup within the next few days.",
		"hi": "आपका जोखिम मध्यम है। कृपया अगले कुछ दिनों में नज़दीकी स्वास्थ्य केंद्र पर जांच कराएँ।",
		"bn": "আপনার ঝুঁকি মাঝারি। কয়েক দিনের মধ্যে নিকটস্থ স্বাস্থ্যকেন্দ্রে যান।",
		"ta": "உங்கள் ஆபத்து மிதமானது. சில நாட்களுக்குள் அருகிலுள்ள சுகாதார மையத்தைப் பார்வையிடவும்.",
		"ml": "നിങ്ങളുടെ അപകടസാധ്യത മിതമാണ്. ഏതാനും ദിവസങ്ങൾക്കുള്ളിൽ ആരോഗ്യകേന്ദ്രം സന്ദർശിക്കുക.",
	},
	"risk_high": {
		"en": "Your risk is high. Please see a doctor as soon as possible and carry your health ID card.",
		"hi": "आपका जोखिम अधिक है। कृपया जल्द से जल्द डॉक्टर से मिलें और अपना हेल्थ आईडी कार्ड साथ रखें।",
		"bn": "আপনার ঝুঁকি বেশি। যত তাড়াতাড়ি সম্ভব ডাক্তার দেখান এবং হেলথ আইডি কার্ড সাথে রাখুন।",
		"ta": "உங்கள் ஆபத்து அதிகம். கூடிய விரைவில் மருத்துவரை அணுகவும்; உங்கள் ஹெல்த் ஐடி அட்டையை எடுத்துச் செல்லவும்.",
		"ml": "നിങ്ങളുടെ അപകടസാധ്യത കൂടുതലാണ്. എത്രയും വേഗം ഡോക്ടറെ കാണുക; ഹെൽത്ത് ഐഡി കാർഡ് കൈവശം വയ്ക്കുക.",
	},
}

// T looks up a catalog message, falling back to English for unknown
// languages and returning the key itself for unknown keys.
func T(language, key string) string {
	msgs, ok := catalog[key]
	if !ok {
		return key
	}
	if msg, ok := msgs[language]; ok {
		return msg
	}
	return msgs["en"]
}
