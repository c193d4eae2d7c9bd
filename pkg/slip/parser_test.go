package slip

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const twoNozzleSlip = `ETOT-MAIN
123456
MODEL: 2422
PRINT DATE: 14-JUL-2024
NOZZLE 1
A: 7709841.690
V: 98656.300
TOT SALES: 71064
NOZZLE 2
A: 5502218.110
V: 64201.850
TOT SALES: 48210`

var _ = Describe("Parse", func() {
	var (
		text   string
		parsed *Slip
	)

	JustBeforeEach(func() {
		parsed = Parse(text)
	})

	When("parsing a complete two-nozzle printout", func() {
		BeforeEach(func() {
			text = twoNozzleSlip
		})

		It("extracts the pump serial number", func() {
			Expect(parsed.PumpSerialNumber).To(Equal("123456"))
		})

		It("extracts the print date", func() {
			Expect(parsed.PrintDate).To(Equal("14-JUL-2024"))
		})

		It("extracts the model", func() {
			Expect(parsed.Model).To(Equal("2422"))
		})

		It("extracts both nozzles in order with exact raw fields", func() {
			Expect(parsed.Nozzles).To(Equal([]Nozzle{
				{Nozzle: "1", A: "7709841.690", V: "98656.300", TotSales: "71064"},
				{Nozzle: "2", A: "5502218.110", V: "64201.850", TotSales: "48210"},
			}))
		})
	})

	When("nozzle markers appear out of numeric order", func() {
		BeforeEach(func() {
			text = "NOZZLE 3\nA: 10\nNOZZLE 1\nA: 20"
		})

		It("keeps occurrence order, not numeric order", func() {
			Expect(parsed.Nozzles).To(HaveLen(2))
			Expect(parsed.Nozzles[0].Nozzle).To(Equal("3"))
			Expect(parsed.Nozzles[1].Nozzle).To(Equal("1"))
		})
	})

	When("a field repeats within one nozzle block", func() {
		BeforeEach(func() {
			text = "NOZZLE 1\nA: 100\nA: 999\nV: 50"
		})

		It("keeps the first match", func() {
			Expect(parsed.Nozzles[0].A).To(Equal("100"))
			Expect(parsed.Nozzles[0].V).To(Equal("50"))
		})
	})

	When("numbers carry thousands separators", func() {
		BeforeEach(func() {
			text = "NOZZLE 1\nA: 7,709,841.690\nTOT SALES: 71,064"
		})

		It("strips the commas from captured values", func() {
			Expect(parsed.Nozzles[0].A).To(Equal("7709841.690"))
			Expect(parsed.Nozzles[0].TotSales).To(Equal("71064"))
		})
	})

	When("the marker is misread so no block is found", func() {
		BeforeEach(func() {
			text = "NOZLE 1\nA: 100\nV: 50\nTOT SALES: 25"
		})

		It("falls back to line grouping and still extracts the nozzle", func() {
			Expect(parsed.Nozzles).To(Equal([]Nozzle{
				{Nozzle: "1", A: "100", V: "50", TotSales: "25"},
			}))
		})
	})

	When("line grouping sees several records", func() {
		BeforeEach(func() {
			text = "NOZLE 1\nA: 100\nNOZLE 2\nV: 50\nTOT SALES: 25"
		})

		It("flushes the open record at each marker and at end of input", func() {
			Expect(parsed.Nozzles).To(Equal([]Nozzle{
				{Nozzle: "1", A: "100"},
				{Nozzle: "2", V: "50", TotSales: "25"},
			}))
		})
	})

	When("header fields are present without any nozzle", func() {
		BeforeEach(func() {
			text = "PRINT DATE: 2-JAN-24\nMODEL: 310"
		})

		It("returns the header with an empty nozzle list", func() {
			Expect(parsed.PrintDate).To(Equal("2-JAN-24"))
			Expect(parsed.Model).To(Equal("310"))
			Expect(parsed.Nozzles).To(BeEmpty())
			Expect(parsed.Empty()).To(BeFalse())
		})
	})

	When("nothing is extractable", func() {
		BeforeEach(func() {
			text = "the print is entirely unreadable"
		})

		It("reports an empty result instead of failing", func() {
			Expect(parsed.Empty()).To(BeTrue())
		})
	})

	When("the serial digits are embedded in a longer token", func() {
		BeforeEach(func() {
			text = "ID 1234567\nNOZZLE 1\nA: 5"
		})

		It("does not treat them as a pump serial number", func() {
			Expect(parsed.PumpSerialNumber).To(BeEmpty())
		})
	})

	When("the date label uses loose separators and case", func() {
		BeforeEach(func() {
			text = "print date - 3-FEB-2023"
		})

		It("still extracts the date", func() {
			Expect(parsed.PrintDate).To(Equal("3-FEB-2023"))
		})
	})
})
