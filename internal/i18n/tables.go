package i18n

var englishTable = map[string]string{
	"nav.credentialVault":             "CredentialVault",
	"nav.microCredentialAggregator":   "Micro-Credential Aggregator",
	"dashboard.learner":               "Learner Dashboard",
	"dashboard.employer":              "Employer Dashboard",
	"dashboard.manageCertificates":    "Manage and verify your certificates",
	"dashboard.searchVerify":          "Search and verify candidate credentials",
	"certificates.myCertificates":     "My Certificates",
	"certificates.uploadCertificate":  "Upload Certificate",
	"certificates.editCertificate":    "Edit Certificate",
	"certificates.deleteCertificate":  "Delete Certificate",
	"certificates.title":              "Certificate Title",
	"certificates.issuer":             "Issuer",
	"certificates.dateIssued":         "Date Issued",
	"certificates.expiryDate":         "Expiry Date",
	"certificates.nsqfLevel":          "NSQF Level",
	"certificates.verificationStatus": "Verification Status",
	"certificates.aiScore":            "AI Credibility Score",
	"certificates.viewPDF":            "View PDF",
	"certificates.viewCertificate":    "View Certificate",
	"certificates.expiringIn":         "Expiring in",
	"certificates.days":               "days",
	"certificates.expired":            "Expired",
	"certificates.expiringWarning":    "Certificate expiring soon!",
	"certificates.expiredWarning":     "Certificate has expired!",
	"status.all":                      "All",
	"status.verified":                 "Verified",
	"status.aiScored":                 "AI-Scored",
	"status.needsReview":              "Needs Review",
	"status.pending":                  "Pending",
	"status.total":                    "Total",
	"filter.status":                   "Status",
	"filter.nsqfLevel":                "NSQF Level",
	"filter.allLevels":                "All Levels",
	"filter.level":                    "Level",
	"search.certificates":             "Search certificates...",
	"search.learners":                 "Search by name or email...",
	"message.certificateUpdated":      "Certificate updated successfully!",
	"message.certificateDeleted":      "Certificate deleted successfully!",
	"message.certificateUploaded":     "Certificate uploaded and verification started!",
	"message.fillAllFields":           "Please fill in all required fields",
	"message.confirmDelete":           "Are you sure you want to delete this certificate?",
	"message.deleteWarning":           "This action cannot be undone.",
	"message.noCertificates":          "No certificates found",
	"message.uploadFirst":             "Upload your first certificate to get started",
	"message.adjustFilters":           "Try adjusting your search or filter criteria",
	"employer.searchLearners":         "Search Learners",
	"employer.searchResults":          "Search Results",
	"employer.viewCertificates":       "View Certificates",
	"employer.certificatesFor":        "certificates for",
	"employer.noLearners":             "No learners found matching",
	"employer.enterSearch":            "Enter at least 2 characters to search for learners by name or email",
	"features.qrVerification":         "QR Code Verification",
	"features.blockchainSecurity":     "Blockchain Security",
	"features.apiVerification":        "API Verification",
	"features.aiScoring":              "AI Credibility Scoring",
	"common.loading":                  "Loading...",
	"common.error":                    "Error",
	"common.success":                  "Success",
	"common.warning":                  "Warning",
}

var hindiTable = map[string]string{
	"nav.credentialVault":             "क्रेडेंशियल वॉल्ट",
	"nav.microCredentialAggregator":   "माइक्रो-क्रेडेंशियल एग्रीगेटर",
	"dashboard.learner":               "शिक्षार्थी डैशबोर्ड",
	"dashboard.employer":              "नियोक्ता डैशबोर्ड",
	"dashboard.manageCertificates":    "अपने प्रमाणपत्रों का प्रबंधन और सत्यापन करें",
	"dashboard.searchVerify":          "उम्मीदवार की साख खोजें और सत्यापित करें",
	"certificates.myCertificates":     "मेरे प्रमाणपत्र",
	"certificates.uploadCertificate":  "प्रमाणपत्र अपलोड करें",
	"certificates.editCertificate":    "प्रमाणपत्र संपादित करें",
	"certificates.deleteCertificate":  "प्रमाणपत्र हटाएं",
	"certificates.title":              "प्रमाणपत्र शीर्षक",
	"certificates.issuer":             "जारीकर्ता",
	"certificates.dateIssued":         "जारी करने की तारीख",
	"certificates.expiryDate":         "समाप्ति तिथि",
	"certificates.nsqfLevel":          "NSQF स्तर",
	"certificates.verificationStatus": "सत्यापन स्थिति",
	"certificates.aiScore":            "AI विश्वसनीयता स्कोर",
	"certificates.viewPDF":            "PDF देखें",
	"certificates.viewCertificate":    "प्रमाणपत्र देखें",
	"certificates.expiringIn":         "समाप्त हो रहा है",
	"certificates.days":               "दिनों में",
	"certificates.expired":            "समाप्त",
	"certificates.expiringWarning":    "प्रमाणपत्र जल्द समाप्त हो रहा है!",
	"certificates.expiredWarning":     "प्रमाणपत्र समाप्त हो गया है!",
	"status.all":                      "सभी",
	"status.verified":                 "सत्यापित",
	"status.aiScored":                 "AI-स्कोर्ड",
	"status.needsReview":              "समीक्षा आवश्यक",
	"status.pending":                  "लंबित",
	"status.total":                    "कुल",
	"filter.status":                   "स्थिति",
	"filter.nsqfLevel":                "NSQF स्तर",
	"filter.allLevels":                "सभी स्तर",
	"filter.level":                    "स्तर",
	"search.certificates":             "प्रमाणपत्र खोजें...",
	"search.learners":                 "नाम या ईमेल से खोजें...",
	"message.certificateUpdated":      "प्रमाणपत्र सफलतापूर्वक अपडेट किया गया!",
	"message.certificateDeleted":      "प्रमाणपत्र सफलतापूर्वक हटाया गया!",
	"message.certificateUploaded":     "प्रमाणपत्र अपलोड किया गया और सत्यापन शुरू हुआ!",
	"message.fillAllFields":           "कृपया सभी आवश्यक फ़ील्ड भरें",
	"message.confirmDelete":           "क्या आप वाकई इस प्रमाणपत्र को हटाना चाहते हैं?",
	"message.deleteWarning":           "यह क्रिया पूर्ववत नहीं की जा सकती।",
	"message.noCertificates":          "कोई प्रमाणपत्र नहीं मिला",
	"message.uploadFirst":             "शुरुआत करने के लिए अपना पहला प्रमाणपत्र अपलोड करें",
	"message.adjustFilters":           "अपनी खोज या फ़िल्टर मानदंड समायोजित करने का प्रयास करें",
	"employer.searchLearners":         "शिक्षार्थी खोजें",
	"employer.searchResults":          "खोज परिणाम",
	"employer.viewCertificates":       "प्रमाणपत्र देखें",
	"employer.certificatesFor":        "के लिए प्रमाणपत्र",
	"employer.noLearners":             "कोई शिक्षार्थी नहीं मिला",
	"employer.enterSearch":            "नाम या ईमेल से शिक्षार्थियों को खोजने के लिए कम से कम 2 अक्षर दर्ज करें",
	"features.qrVerification":         "QR कोड सत्यापन",
	"features.blockchainSecurity":     "ब्लॉकचेन सुरक्षा",
	"features.apiVerification":        "API सत्यापन",
	"features.aiScoring":              "AI विश्वसनीयता स्कोरिंग",
	"common.loading":                  "लोड हो रहा है...",
	"common.error":                    "त्रुटि",
	"common.success":                  "सफलता",
	"common.warning":                  "चेतावनी",
}
