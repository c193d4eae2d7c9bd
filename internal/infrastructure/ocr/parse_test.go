package ocr

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("parseSlipJSON", func() {
	const plainResponse = `{
		"pumpSerialNumber": "123456",
		"printDate": "14-Jul-2024",
		"model": "2422",
		"nozzles": [
			{"nozzle": "1", "a": "7709841.690", "v": "98656.300", "totSales": "71064"},
			{"nozzle": "2", "a": "5502218.110", "v": "64201.850", "totSales": "48210"}
		]
	}`

	When("the response is a bare JSON object", func() {
		It("extracts all fields", func() {
			s, err := parseSlipJSON(plainResponse)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.PumpSerialNumber).To(Equal("123456"))
			Expect(s.PrintDate).To(Equal("14-JUL-2024"))
			Expect(s.Model).To(Equal("2422"))
			Expect(s.Nozzles).To(HaveLen(2))
			Expect(s.Nozzles[0].A).To(Equal("7709841.690"))
			Expect(s.Nozzles[1].TotSales).To(Equal("48210"))
		})
	})

	When("the response is wrapped in a markdown code fence", func() {
		It("strips the fence and parses the object", func() {
			s, err := parseSlipJSON("```json\n" + plainResponse + "\n```")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.PumpSerialNumber).To(Equal("123456"))
			Expect(s.Nozzles).To(HaveLen(2))
		})
	})

	When("the response has prose around the object", func() {
		It("parses only the object", func() {
			s, err := parseSlipJSON("Here is the data:\n" + plainResponse + "\nLet me know if you need more.")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Model).To(Equal("2422"))
		})
	})

	When("the model uses placeholder text for illegible fields", func() {
		It("normalizes placeholders to empty strings", func() {
			s, err := parseSlipJSON(`{
				"pumpSerialNumber": "N/A",
				"printDate": "unknown",
				"model": "",
				"nozzles": [{"nozzle": "1", "a": "none", "v": "12.5", "totSales": "-"}]
			}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.PumpSerialNumber).To(BeEmpty())
			Expect(s.PrintDate).To(BeEmpty())
			Expect(s.Nozzles[0].A).To(BeEmpty())
			Expect(s.Nozzles[0].V).To(Equal("12.5"))
			Expect(s.Nozzles[0].TotSales).To(BeEmpty())
		})
	})

	When("the response contains no JSON object", func() {
		It("returns an error", func() {
			_, err := parseSlipJSON("I could not read this image.")
			Expect(err).To(HaveOccurred())
		})
	})

	When("the JSON is malformed", func() {
		It("returns an error", func() {
			_, err := parseSlipJSON(`{"nozzles": [}`)
			Expect(err).To(HaveOccurred())
		})
	})
})
